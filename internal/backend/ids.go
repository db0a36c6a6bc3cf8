package backend

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/hyun7520/RAG-Complaint-2nd/internal/errors"
)

var ErrBadComplaintID = errors.NewSentinel("malformed complaint id")

// NumericID extracts the numeric backend key from a route id. Detail routes
// may carry a display-formatted id such as "C2026-0004"; the key is the
// segment after the last hyphen. An id without a hyphen is parsed whole, so
// "7" yields 7.
func NumericID(displayID string) (int64, error) {
	segment := displayID
	if idx := strings.LastIndexByte(displayID, '-'); idx >= 0 {
		segment = displayID[idx+1:]
	}
	key, err := strconv.ParseInt(segment, 10, 64)
	if err != nil {
		return 0, errors.Wrap(ErrBadComplaintID, "parse numeric key", slog.String("id", displayID))
	}
	return key, nil
}
