package model

import "fmt"

// PublishStatus is the lifecycle status shared by posts and deliveries.
// A delivery only ever moves pending -> publishing -> published|failed;
// a failed delivery goes back to pending only through an explicit retry reset.
type PublishStatus string

const (
    StatusPending    PublishStatus = "pending"
    StatusPublishing PublishStatus = "publishing"
    StatusPublished  PublishStatus = "published"
    StatusFailed     PublishStatus = "failed"
)

func (s PublishStatus) String() string {
    return string(s)
}

func (s PublishStatus) Valid() bool {
    switch s {
    case StatusPending, StatusPublishing, StatusPublished, StatusFailed:
        return true
    }
    return false
}

// Terminal reports whether the status is an end state the engine never leaves
// on its own.
func (s PublishStatus) Terminal() bool {
    return s == StatusPublished || s == StatusFailed
}

// ParsePublishStatus maps the stored text form back into the enum.
func ParsePublishStatus(raw string) (PublishStatus, error) {
    s := PublishStatus(raw)
    if !s.Valid() {
        return "", fmt.Errorf("unknown publish status: %q", raw)
    }
    return s, nil
}
