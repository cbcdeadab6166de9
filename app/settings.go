package app

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"

	"lcdmenu/menu"
)

var ErrUnknownSetting = errors.New("app: unknown setting")

// Settings holds the adjustable values of the device. Leaves bound to a setting show its
// current value and are refreshed whenever it changes.
type Settings struct {
	Brightness int
	Contrast   int
	Sleep      int
	Speed      int
	Steps      int
	Wait       int

	bound map[string][]*menu.Node
}

type limits struct {
	min, max int
	unit     string
}

var settingLimits = map[string]limits{
	"brightness": {0, 100, "%"},
	"contrast":   {0, 100, "%"},
	"sleep":      {0, 600, "s"},
	"speed":      {1, 99, ""},
	"steps":      {1, 360, ""},
	"wait":       {0, 60, "s"},
}

func DefaultSettings() *Settings {
	return &Settings{Brightness: 80, Contrast: 50, Sleep: 30, Speed: 10, Steps: 32, Wait: 5}
}

func SettingNames() []string {
	names := make([]string, 0, len(settingLimits))
	for name := range settingLimits {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Settings) field(name string) (*int, limits, error) {
	var value *int
	switch name {
	case "brightness":
		value = &s.Brightness
	case "contrast":
		value = &s.Contrast
	case "sleep":
		value = &s.Sleep
	case "speed":
		value = &s.Speed
	case "steps":
		value = &s.Steps
	case "wait":
		value = &s.Wait
	default:
		return nil, limits{}, fmt.Errorf("%w: %q", ErrUnknownSetting, name)
	}
	return value, settingLimits[name], nil
}

func (s *Settings) Get(name string) (int, error) {
	value, _, err := s.field(name)
	if err != nil {
		return 0, err
	}
	return *value, nil
}

// Set stores value clamped to the setting's range and refreshes the bound leaves.
func (s *Settings) Set(name string, value int) error {
	field, limits, err := s.field(name)
	if err != nil {
		return err
	}
	*field = min(max(value, limits.min), limits.max)
	log.Printf("setting %s = %d", name, *field)
	return s.refresh(name)
}

func (s *Settings) Adjust(name string, delta int) error {
	value, err := s.Get(name)
	if err != nil {
		return err
	}
	return s.Set(name, value+delta)
}

func (s *Settings) Format(name string) string {
	value, limits, err := s.field(name)
	if err != nil {
		return "?"
	}
	return strconv.Itoa(*value) + limits.unit
}

// Bind makes leaf show the value of the named setting.
func (s *Settings) Bind(name string, leaf *menu.Node) error {
	if _, _, err := s.field(name); err != nil {
		return err
	}
	if s.bound == nil {
		s.bound = map[string][]*menu.Node{}
	}
	s.bound[name] = append(s.bound[name], leaf)
	return leaf.SetText(s.Format(name))
}

func (s *Settings) refresh(name string) error {
	text := s.Format(name)
	var errs []error
	for _, leaf := range s.bound[name] {
		errs = append(errs, leaf.SetText(text))
	}
	return errors.Join(errs...)
}

// Adjust is an action: args are the settings, the setting name and the delta.
func Adjust(_ *menu.Node, args ...any) error {
	if len(args) != 3 {
		return fmt.Errorf("%w: adjust wants settings, name and delta, got %d args", menu.ErrActionArg, len(args))
	}
	settings, ok1 := args[0].(*Settings)
	name, ok2 := args[1].(string)
	delta, ok3 := args[2].(int)
	if !ok1 || !ok2 || !ok3 {
		return fmt.Errorf("%w: adjust %T, %T, %T", menu.ErrActionArg, args[0], args[1], args[2])
	}
	return settings.Adjust(name, delta)
}
