package request

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"skynet/internal/application/request/usecases"
	domain "skynet/internal/domain/request"
	apperrors "skynet/internal/shared/errors"
	"skynet/internal/shared/logger"
	"skynet/internal/shared/utils"
)

type RequestHandler struct {
	createRequestUC usecases.CreateRequestExecutor
	getRequestUC    usecases.GetRequestExecutor
	getByTicketUC   usecases.GetRequestByTicketExecutor
	listRequestsUC  usecases.ListRequestsExecutor
	deleteRequestUC usecases.DeleteRequestExecutor
	logger          logger.Interface
}

func NewRequestHandler(
	createRequestUC usecases.CreateRequestExecutor,
	getRequestUC usecases.GetRequestExecutor,
	getByTicketUC usecases.GetRequestByTicketExecutor,
	listRequestsUC usecases.ListRequestsExecutor,
	deleteRequestUC usecases.DeleteRequestExecutor,
) *RequestHandler {
	return &RequestHandler{
		createRequestUC: createRequestUC,
		getRequestUC:    getRequestUC,
		getByTicketUC:   getByTicketUC,
		listRequestsUC:  listRequestsUC,
		deleteRequestUC: deleteRequestUC,
		logger:          logger.NewLogger(),
	}
}

// CreateRequest handles POST /requests (multipart/form-data)
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	input, fileHeaders, fieldErrs, err := parseCreateRequestForm(c)
	if err != nil {
		h.logger.Warnw("invalid request body for create request", "error", err)
		utils.ErrorResponseWithError(c, apperrors.NewBadRequestError("invalid form submission"))
		return
	}
	if len(fieldErrs) > 0 {
		utils.FieldErrorResponse(c, "validation failed", fieldErrs)
		return
	}

	files, closeFiles, err := openUploadFiles(fileHeaders)
	if err != nil {
		h.logger.Warnw("failed to open uploaded file", "error", err)
		utils.ErrorResponseWithError(c, apperrors.NewBadRequestError("could not read uploaded files"))
		return
	}
	defer closeFiles()

	cmd := usecases.CreateRequestCommand{Input: input, Files: files}

	result, err := h.createRequestUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			utils.FieldErrorResponse(c, "validation failed", verr.Fields)
			return
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	if result.PartialFailure {
		utils.SuccessResponse(c, http.StatusMultiStatus, "Request created; some attachments failed", result)
		return
	}

	utils.CreatedResponse(c, result, "Request created successfully")
}

// GetRequest handles GET /requests/:id
func (h *RequestHandler) GetRequest(c *gin.Context) {
	requestID, err := parseRequestID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getRequestUC.Execute(c.Request.Context(), usecases.GetRequestQuery{RequestID: requestID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetRequestByTicket handles GET /requests/by-ticket/:ticket
func (h *RequestHandler) GetRequestByTicket(c *gin.Context) {
	query := usecases.GetRequestByTicketQuery{Ticket: c.Param("ticket")}

	result, err := h.getByTicketUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListRequests handles GET /requests
func (h *RequestHandler) ListRequests(c *gin.Context) {
	result, err := h.listRequestsUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// DeleteRequest handles DELETE /requests/:id
func (h *RequestHandler) DeleteRequest(c *gin.Context) {
	requestID, err := parseRequestID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.deleteRequestUC.Execute(c.Request.Context(), usecases.DeleteRequestCommand{RequestID: requestID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Request deleted successfully", result)
}

func parseRequestID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.NewBadRequestError("invalid request ID")
	}
	return uint(id), nil
}
