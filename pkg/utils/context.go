package utils

import (
	"context"
)

type contextKey string

const StaffSubjectKey contextKey = "staff_subject"

// SetStaffContext stores the authenticated staff subject.
func SetStaffContext(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, StaffSubjectKey, subject)
}

func GetStaffSubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(StaffSubjectKey).(string)
	if !ok || subject == "" {
		return "", false
	}
	return subject, true
}
