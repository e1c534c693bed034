package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/johncar-aircon/backoffice-api/utils"
)

// statusForCode maps service error codes to HTTP statuses
var statusForCode = map[string]int{
	utils.CodeValidation:              http.StatusBadRequest,
	utils.CodeNotFound:                http.StatusNotFound,
	utils.CodeInsufficientStock:       http.StatusConflict,
	utils.CodeTechnicianUnavailable:   http.StatusConflict,
	utils.CodeInvalidStatusTransition: http.StatusConflict,
}

// respondError renders err in the standard error envelope. Errors that are
// not AppErrors are logged and reported as DATABASE_ERROR with fallback as
// the message.
func respondError(c *gin.Context, err error, fallback string) {
	code := utils.ErrorCode(err)
	status, known := statusForCode[code]
	if !known {
		log.Printf("%s: %v", fallback, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": fallback,
			},
		})
		return
	}

	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": err.Error(),
		},
	})
}

// respondBindError reports a request body that failed to bind
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    utils.CodeValidation,
			"message": "Invalid request data",
			"details": err.Error(),
		},
	})
}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondDeleted(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
	})
}

// parseID reads a positive numeric path parameter. It writes the 400
// response itself and returns false when the parameter is invalid.
func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    utils.CodeValidation,
				"message": "Invalid " + param + " parameter",
			},
		})
		return 0, false
	}
	return uint(id), true
}
