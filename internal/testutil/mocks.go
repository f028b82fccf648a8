// Package testutil holds test doubles for the browser driver and pages.
package testutil

import (
	"page_automation/domain/entities"
	"page_automation/domain/interfaces"

	"github.com/stretchr/testify/mock"
)

// MockDriver is a mock implementation of interfaces.Driver for testing
type MockDriver struct {
	mock.Mock
}

func (m *MockDriver) Navigate(url string) error {
	return m.Called(url).Error(0)
}

func (m *MockDriver) FindNode(lookup entities.LookUp, locator string) (interfaces.Node, error) {
	args := m.Called(lookup, locator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(interfaces.Node), args.Error(1)
}

func (m *MockDriver) FindNodes(lookup entities.LookUp, locator string) ([]interfaces.Node, error) {
	args := m.Called(lookup, locator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]interfaces.Node), args.Error(1)
}

func (m *MockDriver) CurrentWindowHandle() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockDriver) WindowHandles() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDriver) SwitchToWindow(handle string) error {
	args := m.Called(handle)
	return args.Error(0)
}

// MockNode is a mock implementation of interfaces.Node for testing
type MockNode struct {
	mock.Mock
}

func (m *MockNode) Clear() error {
	return m.Called().Error(0)
}

func (m *MockNode) Click() error {
	return m.Called().Error(0)
}

func (m *MockNode) Submit() error {
	return m.Called().Error(0)
}

func (m *MockNode) SendKeys(keys string) error {
	return m.Called(keys).Error(0)
}

func (m *MockNode) Attribute(name string) (string, error) {
	args := m.Called(name)
	return args.String(0), args.Error(1)
}

func (m *MockNode) TagName() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockNode) Text() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockNode) IsEnabled() (bool, error) {
	args := m.Called()
	return args.Bool(0), args.Error(1)
}

func (m *MockNode) IsSelected() (bool, error) {
	args := m.Called()
	return args.Bool(0), args.Error(1)
}

func (m *MockNode) IsDisplayed() (bool, error) {
	args := m.Called()
	return args.Bool(0), args.Error(1)
}

func (m *MockNode) CSSValue(property string) (string, error) {
	args := m.Called(property)
	return args.String(0), args.Error(1)
}

func (m *MockNode) Location() (entities.Point, error) {
	args := m.Called()
	return args.Get(0).(entities.Point), args.Error(1)
}

func (m *MockNode) Size() (entities.Size, error) {
	args := m.Called()
	return args.Get(0).(entities.Size), args.Error(1)
}

func (m *MockNode) FindNode(lookup entities.LookUp, locator string) (interfaces.Node, error) {
	args := m.Called(lookup, locator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(interfaces.Node), args.Error(1)
}

func (m *MockNode) FindNodes(lookup entities.LookUp, locator string) ([]interfaces.Node, error) {
	args := m.Called(lookup, locator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]interfaces.Node), args.Error(1)
}

// FakePage is a minimal interfaces.Page backed by a driver
type FakePage struct {
	Drv  interfaces.Driver
	Wait int
	Name string
}

func NewFakePage(driver interfaces.Driver) *FakePage {
	return &FakePage{Drv: driver, Name: "FakePage"}
}

func (p *FakePage) Driver() interfaces.Driver { return p.Drv }

func (p *FakePage) DefaultWaitSeconds() int { return p.Wait }

func (p *FakePage) Title() string { return p.Name }

// HookedPage is a FakePage that runs a hook on every visibility check
type HookedPage struct {
	*FakePage
	Calls int
	Err   error
}

func (p *HookedPage) WaitHook() func() error {
	return func() error {
		p.Calls++
		return p.Err
	}
}

// WindowPage is a FakePage that opens in a new window
type WindowPage struct {
	*FakePage
	handle string
}

func (p *WindowPage) SetWindowHandle(handle string) { p.handle = handle }

func (p *WindowPage) WindowHandle() string { return p.handle }

func (p *WindowPage) HasWindowHandle() bool { return p.handle != "" }
