package pages

import (
	"page_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// SubPage is a page reached from a parent page. It shares the parent's
// driver, and inherits its default wait and wait hook unless overridden.
type SubPage struct {
	*Page
	parent interfaces.Page
}

func NewSubPage(parent interfaces.Page, title string, logger *logrus.Logger, opts ...Option) *SubPage {
	inherited := []Option{WithDefaultWait(parent.DefaultWaitSeconds())}
	if hooker, ok := parent.(interfaces.WaitHooker); ok && hooker.WaitHook() != nil {
		inherited = append(inherited, WithWaitHook(hooker.WaitHook()))
	}

	return &SubPage{
		Page:   NewPage(title, parent.Driver(), logger, append(inherited, opts...)...),
		parent: parent,
	}
}

func (s *SubPage) ParentPage() interfaces.Page { return s.parent }

func (s *SubPage) String() string {
	return "Location : " + Path(s)
}
