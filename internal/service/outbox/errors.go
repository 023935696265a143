package outbox

import "errors"

var ErrPublish = errors.New("publish lifecycle events")
