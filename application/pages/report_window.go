package pages

import (
	"errors"
	"fmt"
	"sync"

	"page_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

var ErrNoWindowHandle = errors.New("window handle not set")

var _ interfaces.NewWindowPage = (*ReportWindow)(nil)

// ReportWindow is a sub page that opens in its own browser window. The
// window handle is recorded when a linking control is followed.
type ReportWindow struct {
	*SubPage

	mu     sync.Mutex
	handle string
}

func NewReportWindow(parent interfaces.Page, title string, logger *logrus.Logger, opts ...Option) *ReportWindow {
	return &ReportWindow{SubPage: NewSubPage(parent, title, logger, opts...)}
}

func (r *ReportWindow) SetWindowHandle(handle string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handle = handle
}

func (r *ReportWindow) WindowHandle() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handle
}

func (r *ReportWindow) HasWindowHandle() bool {
	return r.WindowHandle() != ""
}

// SwitchToWindow - moves the driver to the report's window
func (r *ReportWindow) SwitchToWindow() error {
	handle := r.WindowHandle()
	if handle == "" {
		return fmt.Errorf("%w: %s", ErrNoWindowHandle, r.Title())
	}

	r.logger.WithFields(logrus.Fields{"page": r.Title(), "window": handle}).Debug("switching to report window")
	if err := r.Driver().SwitchToWindow(handle); err != nil {
		return fmt.Errorf("failed to switch to %s: %w", r.Title(), err)
	}
	return nil
}
