package errors

import "fmt"

func InvalidEventErr(err error) error {
	return E(Invalid, "invalid transaction event", err)
}

func ValidationFailedErr(err error) error {
	return E(Invalid, "validation failed", err)
}

func EmptyParamErr(field string) error {
	ve := ValidationErrs()
	ve.Add(field, "cannot be empty")
	return E(Invalid, "validation failed", ve.Err())
}

// NotificationNotFoundErr returns a formated error for a missing notification
func NotificationNotFoundErr(id int64) error {
	return E(NotFound, fmt.Sprintf("notification %d not found", id))
}

// DuplicateNotificationErr marks a create that collided on notification_id,
// which callers treat as an idempotent redelivery rather than a failure
func DuplicateNotificationErr(notificationID string, err error) error {
	return E(Exist, fmt.Sprintf("notification %s already exists", notificationID), err)
}
