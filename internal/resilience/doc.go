// Package resilience melindungi panggilan keluar dengan tiga lapisan:
// rate limiter -> circuit breaker -> retry. Satu Pipeline dipakai bersama
// oleh semua pemanggil untuk satu kategori operasi; state-nya hidup
// selama proses berjalan.
package resilience
