package catalog

import (
	"fmt"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"
)

// NoticeTopic is the bus topic carrying operator-facing messages.
const NoticeTopic = "catalog:notice"

type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeWarn    NoticeLevel = "warn"
	NoticeError   NoticeLevel = "error"
)

// Notice is a message the store wants the operator to see
type Notice struct {
	Level   NoticeLevel
	Message string
}

// SubscribeNotices registers fn for every notice published on bus.
func SubscribeNotices(bus EventBus.Bus, fn func(Notice)) error {
	return bus.Subscribe(NoticeTopic, fn)
}

func (s *Store) notify(level NoticeLevel, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	zap.L().Debug("catalog notice", zap.String("level", string(level)), zap.String("message", msg))
	if s.bus != nil {
		s.bus.Publish(NoticeTopic, Notice{Level: level, Message: msg})
	}
}
