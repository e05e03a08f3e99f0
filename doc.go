/*
Package tweakbar provides tweak bars whose variables can be saved to and
restored from a text file.

A Bar wraps a widget library (a Backend) and keeps a record of every
read-write variable registered on it. Save writes the current values of the
recorded variables; Load applies them back.

# Quick Start

	bar, _ := tweakbar.New("Scene")

	var speed float32 = 1.5
	var enabled = true
	bar.AddVarRW("speed", tweakbar.TypeFloat, &speed, "min=0 max=10 step=0.1")
	bar.AddVarRW("enabled", tweakbar.TypeBoolCPP, &enabled, "key=F2")

	mode, _ := bar.DefineEnum("Mode", []tweakbar.EnumVal{{0, "Fast"}, {1, "Slow"}})
	var m int32 = 1
	bar.AddVarRW("mode", mode, &m, "")

	// Each frame, with the default Panel backend:
	ctx := gui.Begin(input, displaySize, dt)
	bar.Draw(ctx)
	gui.End()

	// Later:
	bar.Save("scene.tw")
	report, err := bar.Load("scene.tw")

# File Format

One variable per line, direct variables first, then callback variables,
each in registration order:

	speed FLOAT 1.5
	enabled BOOLCPP true
	mode Mode Slow
	light DIR3F (0.5,-1,0)

Type names are BOOLCPP, BOOL32, INT32, FLOAT, DOUBLE, DIR3F, COLOR3F,
COLOR4F, QUAT4F and the names given to DefineEnum; a TW_TYPE_ prefix is
accepted on load. Vector values are one token with no spaces. Floats are
written with the shortest text that reads back to the same value. Names
cannot contain whitespace.

Loading is best effort: names the bar does not record are listed in
LoadReport.Missing, and lines with an unknown type, a type that differs
from the registration, or a bad value are collected in LoadReport.Errors.
Only a file that cannot be read makes Load fail.

# Definition Strings

Registration calls take a definition string of key=value pairs, quoted with
', " or ` when a value contains spaces:

	bar.AddVarRW("ambient", tweakbar.TypeColor3F, &amb, "group=Light label='Ambient color'")

The Panel backend understands label, help, group, visible, readonly, min,
max, step, precision and key on variables, and label, visible, iconified,
position, size and refresh on the bar.

# Backends

NewPanel (the default) draws the bar each frame with package ui.
backend/fynebar builds the same bar from fyne widgets.
*/
package tweakbar
