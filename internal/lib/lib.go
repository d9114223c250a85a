// Package lib holds modules that do not fit strictly into other layers:
// small shared utilities, background job processing (asynq on Redis) and
// the Resend email integration used for approval notices.
package lib
