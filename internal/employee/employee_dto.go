package employee

type CreateEmployeeRequest struct {
	Name   string `json:"name" binding:"required"`
	Salary int    `json:"salary" binding:"required,gt=0"`
	Age    int    `json:"age" binding:"required,gte=16,lte=75"`
	Title  string `json:"title" binding:"required"`
}

// deleteEmployeeBody: endpoint delete upstream hanya menerima name, bukan id
type deleteEmployeeBody struct {
	Name string `json:"name"`
}

// upstreamEnvelope adalah amplop respons upstream: { data, status, error }
type upstreamEnvelope[T any] struct {
	Data   T      `json:"data"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type DeleteEmployeeResponse struct {
	Deleted bool   `json:"deleted"`
	Name    string `json:"employee_name"`
}
