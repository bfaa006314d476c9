package admin

import (
	"strconv"
	"strings"

	"github.com/kantin-next/internal/http/response"
	"github.com/kantin-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListCheckoutAttempts 结账尝试日志
func (h *Handler) ListCheckoutAttempts(c *gin.Context) {
	page := parsePage(c)

	createdFrom, err := parseTimeNullable(strings.TrimSpace(c.Query("created_from")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	createdTo, err := parseTimeNullable(strings.TrimSpace(c.Query("created_to")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	var userID uint
	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
			userID = uint(parsed)
		}
	}

	attempts, total, err := h.journal.ListAdmin(repository.CheckoutAttemptListFilter{
		Page:        page,
		UserID:      userID,
		SessionID:   strings.TrimSpace(c.Query("session_id")),
		Result:      strings.TrimSpace(c.Query("result")),
		Search:      strings.TrimSpace(c.Query("search")),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.journal_fetch_failed", err)
		return
	}

	response.Paged(c, attempts, response.Pagination{
		Page:      page.Number,
		PageSize:  page.Size,
		Total:     total,
		TotalPage: page.TotalPages(total),
	})
}

// GetCheckoutAttemptSummary 结账结果汇总
func (h *Handler) GetCheckoutAttemptSummary(c *gin.Context) {
	summary, err := h.journal.Summary()
	if err != nil {
		respondError(c, response.CodeInternal, "error.journal_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{"items": summary})
}
