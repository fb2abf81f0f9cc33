package response

import (
	"errors"

	"github.com/gin-gonic/gin"
	domainerrors "trivix-payroll.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response.
// Bare domain sentinels are classified; a reconciliation failure is flagged for manual review.
func Error(c *gin.Context, err error) {
	appErr := domainerrors.FromError(err)

	body := gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	}
	if errors.Is(err, domainerrors.ErrReconciliation) {
		body["requiresManualReview"] = true
	}
	c.JSON(appErr.Status, body)
}

// ErrorWithError sends an error response with a specific status and message
func ErrorWithError(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"code":    code,
		"message": message,
	})
}
