package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/drivesphere/backend/internal/emaillogs"
	"github.com/drivesphere/backend/internal/invitations"
	"github.com/drivesphere/backend/internal/models"
	"github.com/drivesphere/backend/pkg/mailer"
	"github.com/drivesphere/backend/pkg/queue"
)

// InviteEmailProcessor processes invite email jobs: render the template, send
// via SMTP, flip the invitation status and record an email log row.
type InviteEmailProcessor struct {
	inviteRepo *invitations.Repository
	logRepo    *emaillogs.Repository
	mailer     *mailer.Mailer
	queue      *queue.Queue
	logger     *zap.Logger
}

// NewInviteEmailProcessor creates an invite email processor.
func NewInviteEmailProcessor(inviteRepo *invitations.Repository, logRepo *emaillogs.Repository, m *mailer.Mailer, q *queue.Queue, logger *zap.Logger) *InviteEmailProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InviteEmailProcessor{inviteRepo: inviteRepo, logRepo: logRepo, mailer: m, queue: q, logger: logger}
}

// Process executes one invite email job.
func (p *InviteEmailProcessor) Process(ctx context.Context, job *queue.Job) error {
	if job.Type != queue.JobTypeInviteEmail {
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
	var payload queue.InviteEmailPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	inv, err := p.inviteRepo.GetByID(ctx, payload.InvitationID)
	if err != nil {
		if errors.Is(err, invitations.ErrNotFound) {
			p.logger.Warn("invitation gone, dropping job", zap.String("invitation_id", payload.InvitationID.String()))
			return nil
		}
		return fmt.Errorf("load invitation: %w", err)
	}
	if inv.Status == models.InvitationStatusSent || inv.Status == models.InvitationStatusUsed {
		p.logger.Info("invitation already dispatched", zap.String("invitation_id", inv.ID.String()))
		return nil
	}

	msg := mailer.RenderInvite(payload)
	if err := p.mailer.Send(payload.Email, msg); err != nil {
		return fmt.Errorf("send: %w", err)
	}

	if err := p.inviteRepo.MarkSent(ctx, inv.ID); err != nil {
		p.logger.Error("mark sent failed", zap.Error(err), zap.String("invitation_id", inv.ID.String()))
	}
	p.recordLog(ctx, inv, payload, msg.Subject, models.EmailLogStatusSent, "")

	p.logger.Info("invite email sent",
		zap.String("invitation_id", inv.ID.String()),
		zap.String("email_type", payload.EmailType))
	return nil
}

// Fail records a terminal dispatch failure after retries were exhausted.
func (p *InviteEmailProcessor) Fail(ctx context.Context, job *queue.Job, cause error) {
	var payload queue.InviteEmailPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return
	}
	if err := p.inviteRepo.MarkFailed(ctx, payload.InvitationID, cause.Error()); err != nil {
		p.logger.Error("mark failed failed", zap.Error(err), zap.String("invitation_id", payload.InvitationID.String()))
	}
	inv, err := p.inviteRepo.GetByID(ctx, payload.InvitationID)
	if err != nil {
		return
	}
	p.recordLog(ctx, inv, payload, mailer.RenderInvite(payload).Subject, models.EmailLogStatusFailed, cause.Error())
}

func (p *InviteEmailProcessor) recordLog(ctx context.Context, inv *models.Invitation, payload queue.InviteEmailPayload, subject, status, errMsg string) {
	el := &models.EmailLog{
		InvitationID:   &inv.ID,
		CompanyID:      inv.CompanyID,
		EmailType:      payload.EmailType,
		RecipientEmail: payload.Email,
		Subject:        subject,
		Status:         status,
		ErrorMessage:   errMsg,
	}
	if err := p.logRepo.Record(ctx, el); err != nil {
		p.logger.Error("email log insert failed", zap.Error(err), zap.String("invitation_id", inv.ID.String()))
	}
}

// Run starts the worker loop: dequeue, process, retry on error, record the
// terminal failure once retries are exhausted.
func (p *InviteEmailProcessor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("invite email worker stopping")
			return
		default:
		}

		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			p.logger.Warn("dequeue error", zap.Error(err))
			time.Sleep(queue.RetryBackoff)
			continue
		}
		if job == nil {
			continue
		}

		p.logger.Debug("processing job", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
		if err := p.Process(ctx, job); err != nil {
			p.logger.Error("job failed", zap.String("job_id", job.ID), zap.Error(err))
			if reErr := p.queue.Retry(ctx, job); reErr != nil {
				if errors.Is(reErr, queue.ErrJobExhausted) {
					p.Fail(ctx, job, err)
				} else {
					p.logger.Error("retry enqueue failed", zap.Error(reErr))
				}
			}
			time.Sleep(queue.RetryBackoff)
			continue
		}
	}
}
