package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/opclass/internal/catalog"
	"github.com/abhisek/opclass/internal/coach"
	"github.com/abhisek/opclass/internal/llm"
	"github.com/abhisek/opclass/internal/report"
	"github.com/abhisek/opclass/internal/service"
	"github.com/abhisek/opclass/internal/store"
)

// ErrorEnvelope is the body of every non-2xx response.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: APIError{Code: code, Message: message}})
}

type expressionRequest struct {
	Expression *string `json:"expression"`
}

type handlers struct {
	svc   *service.Service
	coach *coach.Coach
}

func healthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// bindExpression reads {"expression": "..."}. A missing field is a bad
// request; an empty string is left to the parser.
func bindExpression(c *gin.Context) (string, bool) {
	var req expressionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "bad_request", "corpo JSON inválido")
		return "", false
	}
	if req.Expression == nil {
		writeError(c, http.StatusBadRequest, "bad_request", `campo "expression" ausente`)
		return "", false
	}
	return *req.Expression, true
}

func (h *handlers) parse(c *gin.Context) {
	raw, ok := bindExpression(c)
	if !ok {
		return
	}
	p, err := h.svc.Parse(raw)
	if err != nil {
		ev := report.NewErrorView(err)
		writeError(c, http.StatusUnprocessableEntity, ev.Code, ev.Message)
		return
	}
	c.JSON(http.StatusOK, report.NewParsedView(p))
}

func (h *handlers) classify(c *gin.Context) {
	raw, ok := bindExpression(c)
	if !ok {
		return
	}
	res, err := h.svc.Classify(c.Request.Context(), raw, store.SourceHTTP)
	if err != nil {
		ev := report.NewErrorView(err)
		writeError(c, http.StatusUnprocessableEntity, ev.Code, ev.Message)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *handlers) explain(c *gin.Context) {
	if !h.coach.Available() {
		writeError(c, http.StatusServiceUnavailable, "coach_unavailable", "nenhum provedor de IA configurado")
		return
	}
	raw, ok := bindExpression(c)
	if !ok {
		return
	}
	res, err := h.svc.Classify(c.Request.Context(), raw, store.SourceHTTP)
	if err != nil {
		ev := report.NewErrorView(err)
		writeError(c, http.StatusUnprocessableEntity, ev.Code, ev.Message)
		return
	}
	wt, err := h.coach.Explain(c.Request.Context(), res)
	switch {
	case errors.Is(err, coach.ErrNoConcept):
		writeError(c, http.StatusUnprocessableEntity, "no_concept", res.FallbackMessage)
	case err != nil:
		var rl *llm.ErrRateLimit
		if errors.As(err, &rl) {
			writeError(c, http.StatusTooManyRequests, "rate_limited", "limite do provedor de IA atingido")
			return
		}
		writeError(c, http.StatusBadGateway, "coach_failed", "não foi possível gerar a explicação")
	default:
		c.JSON(http.StatusOK, wt)
	}
}

func listConcepts(c *gin.Context) {
	var module catalog.ModuleID
	if m := c.Query("module"); m != "" {
		n, err := strconv.Atoi(m)
		if _, ok := catalog.LookupModule(catalog.ModuleID(n)); err != nil || !ok {
			writeError(c, http.StatusBadRequest, "bad_request", "módulo desconhecido")
			return
		}
		module = catalog.ModuleID(n)
	}
	c.JSON(http.StatusOK, report.ConceptViews(module))
}

func getConcept(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusNotFound, "not_found", "conceito não encontrado")
		return
	}
	concept, ok := catalog.Lookup(id)
	if !ok {
		writeError(c, http.StatusNotFound, "not_found", "conceito não encontrado")
		return
	}
	c.JSON(http.StatusOK, report.NewConceptView(concept))
}
