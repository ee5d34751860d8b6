package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

const errorPage = `<!DOCTYPE html><html lang="pt-BR"><head><meta charset="utf-8"><title>Erro</title></head>
<body><h1>Erro inesperado</h1><p>Tente novamente em instantes.</p><p><a href="/">Voltar ao início</a></p></body></html>`

func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if recovered := recover(); recovered != nil {
				slog.Error("panic recovered", "error", fmt.Sprintf("%v", recovered), "stack", string(debug.Stack()))
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(errorPage))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
