package usecases

import (
	"context"
	"errors"
	"sync"
	"time"

	"skynet/internal/application/request/dto"
	"skynet/internal/domain/request"
	vo "skynet/internal/domain/request/valueobjects"
	apperrors "skynet/internal/shared/errors"
	"skynet/internal/shared/logger"
)

const (
	defaultMaxTicketAttempts    = 5
	defaultMaxConcurrentUploads = 4
)

type CreateRequestCommand struct {
	Input request.CreateRequestInput
	Files []UploadFile
}

type CreateRequestResult struct {
	RequestID      uint
	Ticket         string
	Status         string
	CreatedAt      time.Time
	Files          []dto.FileOutcome
	PartialFailure bool
}

// CreateRequestUseCase runs the full intake pipeline: validate the
// submission, allocate a unique ticket, persist the request, upload any
// attachments with bounded parallelism, and record the surviving ones.
// The request is durable before the first upload starts; file failures
// never roll it back.
type CreateRequestUseCase struct {
	requestRepo          request.RequestRepository
	ticketGen            request.TicketGenerator
	validator            *request.Validator
	uploader             AttachmentUploader
	notifier             Notifier
	logger               logger.Interface
	maxTicketAttempts    int
	maxConcurrentUploads int
}

func NewCreateRequestUseCase(
	requestRepo request.RequestRepository,
	ticketGen request.TicketGenerator,
	validator *request.Validator,
	uploader AttachmentUploader,
	notifier Notifier,
	logger logger.Interface,
	maxTicketAttempts int,
	maxConcurrentUploads int,
) *CreateRequestUseCase {
	if maxTicketAttempts <= 0 {
		maxTicketAttempts = defaultMaxTicketAttempts
	}
	if maxConcurrentUploads <= 0 {
		maxConcurrentUploads = defaultMaxConcurrentUploads
	}
	return &CreateRequestUseCase{
		requestRepo:          requestRepo,
		ticketGen:            ticketGen,
		validator:            validator,
		uploader:             uploader,
		notifier:             notifier,
		logger:               logger,
		maxTicketAttempts:    maxTicketAttempts,
		maxConcurrentUploads: maxConcurrentUploads,
	}
}

func (uc *CreateRequestUseCase) Execute(ctx context.Context, cmd CreateRequestCommand) (*CreateRequestResult, error) {
	uc.logger.Infow("executing create request use case", "email", cmd.Input.Email, "files", len(cmd.Files))

	input, verr := uc.validator.ValidateCreateInput(cmd.Input)
	if verr != nil {
		uc.logger.Warnw("request submission rejected", "fields", len(verr.Fields))
		return nil, verr
	}

	coords, err := vo.NewCoordinates(input.Latitude, input.Longitude)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	req, err := uc.persistWithUniqueTicket(ctx, input, coords)
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("request created", "request_id", req.ID(), "ticket", req.Ticket())

	outcomes := uc.uploadAll(ctx, req.Ticket(), cmd.Files)
	uc.recordAttachments(ctx, req, outcomes)

	partial := false
	for _, o := range outcomes {
		if o.Status == dto.FileStatusFailed {
			partial = true
			break
		}
	}
	if partial {
		uc.logger.Warnw("request created with failed attachments", "request_id", req.ID(), "ticket", req.Ticket())
	}

	if uc.notifier != nil {
		if err := uc.notifier.SendRequestConfirmation(ctx, req.Email(), req.Name(), req.Ticket()); err != nil {
			uc.logger.Warnw("failed to send confirmation email", "ticket", req.Ticket(), "error", err)
		}
	}

	return &CreateRequestResult{
		RequestID:      req.ID(),
		Ticket:         req.Ticket(),
		Status:         req.Status().String(),
		CreatedAt:      req.CreatedAt(),
		Files:          outcomes,
		PartialFailure: partial,
	}, nil
}

// persistWithUniqueTicket generates a ticket code and inserts the request,
// retrying on collision. The existence probe narrows the race window; the
// unique index backstops it, so a duplicate-key failure on insert counts as
// a collision and re-enters the loop with a fresh aggregate.
func (uc *CreateRequestUseCase) persistWithUniqueTicket(
	ctx context.Context,
	input request.CreateRequestInput,
	coords *vo.Coordinates,
) (*request.Request, error) {
	for attempt := 1; attempt <= uc.maxTicketAttempts; attempt++ {
		code, err := uc.ticketGen.Generate(ctx)
		if err != nil {
			uc.logger.Errorw("failed to generate ticket code", "error", err)
			return nil, apperrors.NewInternalError("failed to generate ticket code", err.Error())
		}

		exists, err := uc.requestRepo.ExistsByTicket(ctx, code)
		if err != nil {
			return nil, err
		}
		if exists {
			uc.logger.Warnw("ticket code collision", "ticket", code, "attempt", attempt)
			continue
		}

		req, err := request.NewRequest(
			input.Name,
			input.Email,
			input.Phone,
			input.Type,
			input.Priority,
			input.Description,
			input.Address,
			coords,
		)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		if err := req.SetTicket(code); err != nil {
			return nil, apperrors.NewInternalError("failed to assign ticket code", err.Error())
		}

		if err := uc.requestRepo.Save(ctx, req); err != nil {
			if apperrors.IsDuplicateError(err) {
				uc.logger.Warnw("ticket code collided on insert", "ticket", code, "attempt", attempt)
				continue
			}
			uc.logger.Errorw("failed to save request", "error", err)
			return nil, err
		}
		return req, nil
	}

	uc.logger.Errorw("exhausted ticket generation attempts", "attempts", uc.maxTicketAttempts)
	return nil, apperrors.NewConflictError("could not allocate a unique ticket code")
}

// uploadAll pushes the files to the content store with at most
// maxConcurrentUploads in flight. Outcomes come back in submission order
// regardless of completion order.
func (uc *CreateRequestUseCase) uploadAll(ctx context.Context, ticket string, files []UploadFile) []dto.FileOutcome {
	outcomes := make([]dto.FileOutcome, len(files))
	if len(files) == 0 {
		return outcomes
	}

	sem := make(chan struct{}, uc.maxConcurrentUploads)
	var wg sync.WaitGroup

	for i := range files {
		wg.Add(1)
		go func(idx int, file UploadFile) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := ctx.Err(); err != nil {
				outcomes[idx] = failedOutcome(file.Name, UploadReasonBackendError, "upload cancelled")
				return
			}

			key, err := uc.uploader.Upload(ctx, ticket, file)
			if err != nil {
				uc.logger.Warnw("attachment upload failed", "ticket", ticket, "file", file.Name, "error", err)
				outcomes[idx] = uploadFailureOutcome(file.Name, err)
				return
			}
			outcomes[idx] = dto.FileOutcome{
				Name:       file.Name,
				Status:     dto.FileStatusUploaded,
				StorageKey: key,
			}
		}(i, files[i])
	}

	wg.Wait()
	return outcomes
}

// recordAttachments persists an attachment row for every uploaded file. A
// persistence failure downgrades that file's outcome; the upload itself is
// not retried or undone.
func (uc *CreateRequestUseCase) recordAttachments(ctx context.Context, req *request.Request, outcomes []dto.FileOutcome) {
	for i := range outcomes {
		if outcomes[i].Status != dto.FileStatusUploaded {
			continue
		}

		att, err := request.NewAttachment(req.ID(), outcomes[i].StorageKey)
		if err == nil {
			err = uc.requestRepo.SaveAttachment(ctx, att)
		}
		if err == nil {
			err = req.AddAttachment(att)
		}
		if err != nil {
			uc.logger.Errorw("failed to record attachment",
				"request_id", req.ID(), "file", outcomes[i].Name, "error", err)
			outcomes[i] = failedOutcome(outcomes[i].Name, UploadReasonBackendError, "file stored but could not be recorded")
		}
	}
}

func failedOutcome(name, reason, message string) dto.FileOutcome {
	return dto.FileOutcome{
		Name:    name,
		Status:  dto.FileStatusFailed,
		Reason:  reason,
		Message: message,
	}
}

func uploadFailureOutcome(name string, err error) dto.FileOutcome {
	var uerr *UploadError
	if errors.As(err, &uerr) {
		return failedOutcome(name, uerr.Reason, uerr.Message)
	}
	return failedOutcome(name, UploadReasonBackendError, err.Error())
}
