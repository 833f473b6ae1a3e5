package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestMiddleware(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Middleware Suite")
}

var _ = Describe("CORS", func() {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	serve := func(allowedOrigins, method, origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/api/v1/ping", nil)
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		rec := httptest.NewRecorder()
		CORS(allowedOrigins)(ok).ServeHTTP(rec, req)
		return rec
	}

	It("echoes a configured origin with credentials", func() {
		rec := serve("https://hr.example.com", http.MethodGet, "https://hr.example.com")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("https://hr.example.com"))
		Expect(rec.Header().Get("Access-Control-Allow-Credentials")).To(Equal("true"))
		Expect(rec.Header().Get("Vary")).To(Equal("Origin"))
	})

	It("refuses an origin outside the configured list", func() {
		rec := serve("https://hr.example.com", http.MethodGet, "https://evil.example.com")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
		Expect(rec.Header().Get("Access-Control-Allow-Credentials")).To(BeEmpty())
	})

	It("matches any origin on the wildcard", func() {
		rec := serve("*", http.MethodGet, "https://anywhere.example.com")

		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("https://anywhere.example.com"))
		Expect(rec.Header().Get("Access-Control-Allow-Credentials")).To(Equal("true"))
	})

	It("accepts any entry of a comma separated list", func() {
		rec := serve("https://a.example.com, https://b.example.com", http.MethodGet, "https://b.example.com")

		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("https://b.example.com"))
	})

	It("answers preflight requests without reaching the handler", func() {
		rec := serve("https://hr.example.com", http.MethodOptions, "https://hr.example.com")

		Expect(rec.Code).To(Equal(http.StatusNoContent))
		Expect(rec.Header().Get("Access-Control-Allow-Methods")).To(ContainSubstring("PATCH"))
	})

	It("sets no headers when the request has no origin", func() {
		rec := serve("*", http.MethodGet, "")

		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
	})
})
