package interfaces

// Page is the owning page of an element: it supplies driver access and the default wait
type Page interface {
	Driver() Driver
	DefaultWaitSeconds() int
	Title() string
}

// WaitHooker is implemented by pages that run a side effect on every visibility poll
type WaitHooker interface {
	WaitHook() func() error
}

// NewWindowPage is implemented by pages that open in a window of their own
type NewWindowPage interface {
	Page
	SetWindowHandle(handle string)
	WindowHandle() string
	HasWindowHandle() bool
}

// ParentPage is implemented by pages nested under another page
type ParentPage interface {
	ParentPage() Page
}
