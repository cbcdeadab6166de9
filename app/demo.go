package app

import (
	"strings"

	"lcdmenu/grid"
	"lcdmenu/menu"
)

// Demo builds the turntable menu: a welcome screen leading to a looping row of tiles. Up and
// Down change the value under a tile; the Settings tile opens the display settings.
func Demo(size grid.Size, settings *Settings) (*menu.Node, error) {
	display := menu.Column().Named("settings").Size(size.Width, size.Height).BindNavigation()
	display.AddAction(menu.NewAction(menu.Back, menu.Select))
	for _, s := range []struct {
		name string
		step int
	}{{"brightness", 10}, {"contrast", 10}, {"sleep", 30}} {
		row, err := settingRow(s.name, s.step, size.Width, settings)
		if err != nil {
			return nil, err
		}
		if err := display.Insert(row); err != nil {
			return nil, err
		}
	}

	speed := menu.Text("")
	if err := settings.Bind("speed", speed); err != nil {
		return nil, err
	}
	running := menu.Column(
		menu.Text("Turntable"),
		menu.Row(menu.Text("speed "), speed),
	).Named("running").Size(size.Width, size.Height)
	running.AddAction(
		menu.NewAction(menu.Back, menu.Select, menu.Left),
		menu.NewAction(Adjust, menu.Up).With(settings, "speed", 1),
		menu.NewAction(Adjust, menu.Down).With(settings, "speed", -1),
	)

	turntable := tile("TURN", "TABLE")
	turntable.AddAction(menu.NewAction(menu.Enter, menu.Select).With(running))
	setup := tile("Settings", "...")
	setup.AddAction(menu.NewAction(menu.Enter, menu.Select).With(display))
	back := tile("BACK", "<---")
	back.AddAction(menu.NewAction(menu.Back, menu.Select))

	home := menu.Row().Named("home").Size(size.Width, size.Height).
		Divider(" ").LoopDivider(" ~ ").Loop(true).BindNavigation()
	if err := home.Insert(turntable); err != nil {
		return nil, err
	}
	for _, v := range []struct{ title, name string }{{"Speed", "speed"}, {"Stop", "steps"}, {"Wait", "wait"}} {
		item, err := valueTile(v.title, v.name, settings)
		if err != nil {
			return nil, err
		}
		if err := home.Insert(item); err != nil {
			return nil, err
		}
	}
	if err := home.Insert(setup, back); err != nil {
		return nil, err
	}

	welcome := menu.Column(menu.Text("Welcome")).Named("welcome").Size(size.Width, size.Height).
		Align(grid.Center, grid.Center).Cursor(4, 0)
	welcome.AddAction(menu.NewAction(menu.Enter, menu.Select).With(home))
	return welcome, nil
}

// tile is a title over a centered value, with the cursor on the title.
func tile(title, value string) *menu.Node {
	return menu.Column(
		menu.Text(title),
		menu.Text(value).Align(grid.Center, grid.Start),
	).Named(strings.ToLower(title)).Cursor(0, 0)
}

func valueTile(title, name string, settings *Settings) (*menu.Node, error) {
	t := tile(title, "")
	if err := settings.Bind(name, t.Items()[1]); err != nil {
		return nil, err
	}
	t.AddAction(
		menu.NewAction(Adjust, menu.Up).With(settings, name, 1),
		menu.NewAction(Adjust, menu.Down).With(settings, name, -1),
	)
	return t, nil
}

func settingRow(name string, step, width int, settings *Settings) (*menu.Node, error) {
	value := menu.Text("").Size(5, 1).Align(grid.End, grid.Start)
	if err := settings.Bind(name, value); err != nil {
		return nil, err
	}
	label := strings.ToUpper(name[:1]) + name[1:]
	row := menu.Row(menu.Text(label).Size(width-5, 1), value).Named(name)
	row.AddAction(
		menu.NewAction(Adjust, menu.Right).With(settings, name, step),
		menu.NewAction(Adjust, menu.Left).With(settings, name, -step),
	)
	return row, nil
}
