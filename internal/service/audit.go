package service

import (
	"context"
	"encoding/json"

	"backoffice/internal/entity"
	"backoffice/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// auditor writes security log entries. A failed write never fails the action
// being audited; it is logged instead.
type auditor struct {
	logs   repository.SecurityLogRepository
	logger logrus.FieldLogger
}

func (a auditor) record(
	ctx context.Context,
	actorID *uuid.UUID,
	subjectID *uuid.UUID,
	ipAddress *string,
	action entity.SecurityAction,
	metadata map[string]any,
) {
	if a.logs == nil {
		return
	}
	var payload datatypes.JSON
	if metadata != nil {
		bytes, err := json.Marshal(metadata)
		if err != nil {
			a.warn(err, action)
			return
		}
		payload = datatypes.JSON(bytes)
	}

	log := &entity.SecurityLog{
		ActorID:   actorID,
		SubjectID: subjectID,
		IPAddress: ipAddress,
		Action:    action,
		Metadata:  payload,
	}
	if err := a.logs.Log(ctx, log); err != nil {
		a.warn(err, action)
	}
}

func (a auditor) warn(err error, action entity.SecurityAction) {
	if a.logger == nil {
		return
	}
	a.logger.WithError(err).WithField("action", string(action)).Warn("security log write failed")
}

func uuidPtr(id uuid.UUID) *uuid.UUID {
	return &id
}
