package converter

import (
	"hotel-ortus/internal/delivery/dto"
	"hotel-ortus/internal/domain/entity"
)

const systemActor = "system"

// AuditLogToResponse converts a AuditLog entity to AuditLogResponse DTO.
// Entries without a user were written by the auto-checkout sweep.
func AuditLogToResponse(log *entity.AuditLog) *dto.AuditLogResponse {
	if log == nil {
		return nil
	}

	response := &dto.AuditLogResponse{
		ID:        log.ID,
		Actor:     systemActor,
		User:      UserToResponse(log.User),
		Action:    log.Action,
		Metadata:  log.Metadata,
		CreatedAt: log.CreatedAt,
	}
	if log.User != nil {
		response.Actor = log.User.Email
	}
	return response
}

// AuditLogsToResponses converts a slice of AuditLog entities to slice of AuditLogResponse DTOs
func AuditLogsToResponses(logs []entity.AuditLog) []dto.AuditLogResponse {
	responses := make([]dto.AuditLogResponse, len(logs))
	for i := range logs {
		responses[i] = *AuditLogToResponse(&logs[i])
	}
	return responses
}
