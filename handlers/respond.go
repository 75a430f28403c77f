package handlers

import (
	"net/http"

	"wayfare/services/svcerr"
	"wayfare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// abortWithServiceError writes a typed service failure with its stable
// code, or a 500 for anything unexpected.
func abortWithServiceError(c *gin.Context, err error) {
	code := svcerr.CodeOf(err)
	if code == "" {
		utils.GetLogger().Error("internal error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(svcerr.HTTPStatus(err), gin.H{"error": err.Error(), "code": string(code)})
}
