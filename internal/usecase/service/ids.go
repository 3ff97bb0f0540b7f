package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

func parseID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, invalidInput(fmt.Errorf("%s must be a valid uuid", field))
	}
	return id, nil
}

func parseIDs(raw []string, field string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := parseID(r, field)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func utcNow() time.Time {
	return time.Now().UTC()
}
