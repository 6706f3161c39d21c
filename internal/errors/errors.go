package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Status codes carried in the response envelope
const (
	CodeSuccess = "SUCCESS"

	// Authentication errors
	CodeUnauthorized = "UNAUTHORIZED"
	CodeFailure      = "FAILURE"

	// Validation errors
	CodeValidation = "VALIDATION_ERROR"

	// Resource errors
	CodeNotFound         = "NOT_FOUND"
	CodeDuplicateAccount = "DUPLICATE_ACCOUNT"

	// Service errors
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// Status is the outcome block present in every response
type Status struct {
	IsSuccess bool   `json:"isSuccess"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// Envelope is the decoded shape of a response; payload keys sit beside status
type Envelope struct {
	Status Status `json:"status"`
}

func respond(c *gin.Context, statusCode int, status Status, payload gin.H) {
	body := gin.H{"status": status}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// Success sends a successful envelope with the given payload keys
func Success(c *gin.Context, statusCode int, payload gin.H) {
	respond(c, statusCode, Status{IsSuccess: true, Code: CodeSuccess, Message: "OK"}, payload)
}

// Failure sends a business-level failure. These are delivered with HTTP 200;
// clients branch on status.code.
func Failure(c *gin.Context, code, message string) {
	respond(c, http.StatusOK, Status{Code: code, Message: message}, nil)
}

// InvalidCredentials sends the single failure used for every rejected login
func InvalidCredentials(c *gin.Context) {
	Failure(c, CodeFailure, "Invalid Credentials")
}

// NotFound sends the failure for absent, deleted, and foreign records
func NotFound(c *gin.Context) {
	Failure(c, CodeNotFound, "Not found")
}

// DuplicateAccount sends the failure for a signup with a registered email
func DuplicateAccount(c *gin.Context) {
	Failure(c, CodeDuplicateAccount, "Account already exists")
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request body"
	}
	respond(c, http.StatusBadRequest, Status{Code: CodeValidation, Message: message}, nil)
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	respond(c, http.StatusUnauthorized, Status{Code: CodeUnauthorized, Message: message}, nil)
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	respond(c, http.StatusInternalServerError, Status{Code: CodeInternalError, Message: message}, nil)
}

// ServiceUnavailable sends a 503 response
func ServiceUnavailable(c *gin.Context, message string) {
	if message == "" {
		message = "Service temporarily unavailable"
	}
	respond(c, http.StatusServiceUnavailable, Status{Code: CodeServiceUnavailable, Message: message}, nil)
}
