package ui_test

import (
	"testing"

	"github.com/go-theft-auto/tweakbar/ui"
)

// mockRenderer is a test renderer that doesn't render anything.
type mockRenderer struct {
	renderCalls int
}

func (m *mockRenderer) Render(dl *ui.DrawList) error {
	m.renderCalls++
	dl.Finalize()
	return nil
}

func (m *mockRenderer) FontTextureID() uint32 {
	return 1
}

func (m *mockRenderer) Resize(width, height int) {}

// click presses the left button at (x, y) as a fresh edge.
func click(input *ui.InputState, x, y float32) {
	input.Reset()
	input.SetMouseButton(ui.MouseButtonLeft, false)
	input.Reset()
	input.SetMousePos(x, y)
	input.SetMouseButton(ui.MouseButtonLeft, true)
}

func TestGUIBasicUsage(t *testing.T) {
	renderer := &mockRenderer{}
	g := ui.New(renderer, ui.WithStyle(ui.AntStyle()))

	input := ui.NewInputState()
	ctx := g.Begin(input, ui.Vec2{X: 1920, Y: 1080}, 0.016)
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}

	ctx.Text("Hello World")
	ctx.TextColored("Colored", ui.ColorYellow)

	if err := g.End(); err != nil {
		t.Fatalf("End() returned error: %v", err)
	}
	if renderer.renderCalls != 1 {
		t.Errorf("expected 1 render call, got %d", renderer.renderCalls)
	}
}

func TestButton(t *testing.T) {
	g := ui.New(&mockRenderer{})
	input := ui.NewInputState()

	ctx := g.Begin(input, ui.Vec2{X: 800, Y: 600}, 0.016)
	if ctx.Button("Test Button") {
		t.Error("button should not be clicked without mouse input")
	}
	_ = g.End()
}

func TestButtonWithClick(t *testing.T) {
	g := ui.New(&mockRenderer{})
	input := ui.NewInputState()
	click(input, 10, 10)

	ctx := g.Begin(input, ui.Vec2{X: 800, Y: 600}, 0.016)
	clicked := ctx.Button("Click Me")
	_ = g.End()

	if !clicked {
		t.Error("button under the mouse should report a click")
	}
}

func TestButtonDisabled(t *testing.T) {
	g := ui.New(&mockRenderer{})
	input := ui.NewInputState()
	click(input, 10, 10)

	ctx := g.Begin(input, ui.Vec2{X: 800, Y: 600}, 0.016)
	clicked := ctx.Button("Click Me", ui.WithDisabled(true))
	_ = g.End()

	if clicked {
		t.Error("disabled button should not report a click")
	}
}

func TestCheckbox(t *testing.T) {
	g := ui.New(&mockRenderer{})
	input := ui.NewInputState()

	ctx := g.Begin(input, ui.Vec2{X: 800, Y: 600}, 0.016)
	checked := false
	ctx.Checkbox("Enable", &checked)
	_ = g.End()

	if checked {
		t.Error("checkbox should remain unchecked without click")
	}
}

func TestCheckboxToggle(t *testing.T) {
	g := ui.New(&mockRenderer{})
	input := ui.NewInputState()
	// "Enable" is 48px wide; the box starts after two item spacings.
	click(input, 60, 10)

	ctx := g.Begin(input, ui.Vec2{X: 800, Y: 600}, 0.016)
	checked := false
	changed := ctx.Checkbox("Enable", &checked)
	_ = g.End()

	if !changed || !checked {
		t.Errorf("checkbox click: changed=%v checked=%v", changed, checked)
	}
}

func TestSliderFloatDrag(t *testing.T) {
	g := ui.New(&mockRenderer{})
	input := ui.NewInputState()
	// Label "v" ends at x=16; the 140px track minus a 10px grab centers at 86.
	click(input, 86, 10)

	ctx := g.Begin(input, ui.Vec2{X: 800, Y: 600}, 0.016)
	v := float32(0)
	changed := ctx.SliderFloat("v", &v, 0, 10)
	_ = g.End()

	if !changed {
		t.Fatal("slider should report a change")
	}
	if v != 5 {
		t.Errorf("expected 5, got %v", v)
	}
}

func TestSliderIntStep(t *testing.T) {
	g := ui.New(&mockRenderer{})
	input := ui.NewInputState()
	click(input, 86, 10)

	ctx := g.Begin(input, ui.Vec2{X: 800, Y: 600}, 0.016)
	v := 0
	ctx.SliderInt("v", &v, 0, 9)
	_ = g.End()

	// 4.5 rounds away from zero.
	if v != 5 {
		t.Errorf("expected 5, got %d", v)
	}
}

func TestDragFloatWheel(t *testing.T) {
	g := ui.New(&mockRenderer{})
	input := ui.NewInputState()
	input.SetMousePos(30, 10)
	input.SetMouseWheel(0, 2)

	ctx := g.Begin(input, ui.Vec2{X: 800, Y: 600}, 0.016)
	v := float32(1)
	changed := ctx.DragFloat("v", &v, ui.WithStep(0.5), ui.WithRange(0, 1.5))
	_ = g.End()

	if !changed {
		t.Fatal("wheel over the field should change it")
	}
	if v != 1.5 {
		t.Errorf("expected clamp to 1.5, got %v", v)
	}
}

func TestDragFloat64OneSidedBound(t *testing.T) {
	g := ui.New(&mockRenderer{})
	input := ui.NewInputState()
	input.SetMousePos(30, 10)
	input.SetMouseWheel(0, 3)

	ctx := g.Begin(input, ui.Vec2{X: 800, Y: 600}, 0.016)
	v := 1e12
	changed := ctx.DragFloat64("v", &v, ui.WithStep(1), ui.WithMin(0))
	_ = g.End()

	if !changed || v != 1e12+3 {
		t.Errorf("expected 1e12+3 with no upper clamp, got %v (changed=%v)", v, changed)
	}
}

func TestDragFloatNWithoutInput(t *testing.T) {
	g := ui.New(&mockRenderer{})
	input := ui.NewInputState()

	ctx := g.Begin(input, ui.Vec2{X: 800, Y: 600}, 0.016)
	v := []float32{1, 2, 3}
	if ctx.DragFloatN("dir", v) {
		t.Error("no input should not change values")
	}
	if ctx.ColorEdit("color", []float32{1, 0, 0, 1}, ui.WithAlpha()) {
		t.Error("no input should not change color")
	}
	_ = g.End()
}

func TestComboBoxSelect(t *testing.T) {
	g := ui.New(&mockRenderer{})
	input := ui.NewInputState()
	items := []string{"Low", "Medium", "High"}
	selected := 0

	// Open: the header starts after the "Mode" label at x=40.
	click(input, 50, 10)
	ctx := g.Begin(input, ui.Vec2{X: 800, Y: 600}, 0.016)
	ctx.ComboBox("Mode", &selected, items)
	_ = g.End()
	if !ctx.HasActivePopup() {
		t.Fatal("combo box should be open after clicking its header")
	}

	// Items start below the 22px header, 20px apart.
	click(input, 50, 70)
	ctx = g.Begin(input, ui.Vec2{X: 800, Y: 600}, 0.016)
	changed := ctx.ComboBox("Mode", &selected, items)
	_ = g.End()

	if !changed || selected != 2 {
		t.Errorf("expected selection 2, got changed=%v selected=%d", changed, selected)
	}

	input.Reset()
	ctx = g.Begin(input, ui.Vec2{X: 800, Y: 600}, 0.016)
	ctx.ComboBox("Mode", &selected, items)
	_ = g.End()
	if ctx.HasActivePopup() {
		t.Error("combo box should release the popup once closed")
	}
}

func TestCollapsingHeader(t *testing.T) {
	g := ui.New(&mockRenderer{})
	input := ui.NewInputState()

	ctx := g.Begin(input, ui.Vec2{X: 800, Y: 600}, 0.016)
	if !ctx.CollapsingHeader("Group") {
		t.Error("header should default to open")
	}
	if ctx.CollapsingHeader("Closed", ui.DefaultOpen(false)) {
		t.Error("DefaultOpen(false) header should start closed")
	}
	_ = g.End()

	click(input, 10, 10)
	ctx = g.Begin(input, ui.Vec2{X: 800, Y: 600}, 0.016)
	if ctx.CollapsingHeader("Group") {
		t.Error("clicking the header should collapse it")
	}
	_ = g.End()
}

func TestPanel(t *testing.T) {
	renderer := &mockRenderer{}
	g := ui.New(renderer)
	input := ui.NewInputState()
	input.SetMousePos(20, 20)

	ctx := g.Begin(input, ui.Vec2{X: 800, Y: 600}, 0.016)
	ctx.Panel("Test Panel", ui.Gap(8), ui.Padding(12))(func() {
		ctx.Text("Line 1")
		ctx.Text("Line 2")
	})

	dl := ctx.DrawList
	if len(dl.VtxBuffer) == 0 || dl.VtxBuffer[0].Color != ctx.Style().PanelColor {
		t.Error("panel background should be the first primitive")
	}
	if !ctx.WantCaptureMouse {
		t.Error("mouse over the panel should be captured")
	}
	_ = g.End()
}

func TestVStackHStack(t *testing.T) {
	g := ui.New(&mockRenderer{})
	input := ui.NewInputState()

	ctx := g.Begin(input, ui.Vec2{X: 800, Y: 600}, 0.016)
	ctx.VStack(ui.Gap(10))(func() {
		ctx.HStack(ui.Gap(5))(func() {
			ctx.Text("Label:")
			ctx.Text("Value")
		})
		ctx.Text("Below")
	})
	if ctx.CursorPos().Y <= 0 {
		t.Error("stack should advance the cursor")
	}
	_ = g.End()
}

func TestDrawListPool(t *testing.T) {
	dl1 := ui.AcquireDrawList()
	if dl1 == nil {
		t.Fatal("expected non-nil DrawList")
	}
	dl1.AddRect(0, 0, 100, 100, ui.ColorWhite)
	ui.ReleaseDrawList(dl1)

	dl2 := ui.AcquireDrawList()
	if dl2 == nil {
		t.Fatal("expected non-nil DrawList after release")
	}
	if len(dl2.VtxBuffer) != 0 {
		t.Error("reused DrawList should be cleared")
	}
	ui.ReleaseDrawList(dl2)
}

func TestDrawListTextureBatches(t *testing.T) {
	dl := ui.AcquireDrawList()
	defer ui.ReleaseDrawList(dl)

	dl.AddRect(0, 0, 10, 10, ui.ColorWhite)
	dl.SetTexture(7)
	dl.AddText(0, 0, "ab", ui.ColorWhite, 1, 8, 16)
	dl.SetTexture(0)
	dl.Finalize()

	if len(dl.CmdBuffer) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(dl.CmdBuffer))
	}
	if dl.CmdBuffer[1].TextureID != 7 || dl.CmdBuffer[1].ElemCount != 12 {
		t.Errorf("text command = %+v", dl.CmdBuffer[1])
	}
}

func TestIDGeneration(t *testing.T) {
	g := ui.New(&mockRenderer{})
	ctx := g.Begin(ui.NewInputState(), ui.Vec2{X: 800, Y: 600}, 0.016)

	if ctx.GetID("button") != ctx.GetID("button") {
		t.Error("same label in the same scope should yield the same ID")
	}
	if ctx.GetID("a") == ctx.GetID("b") {
		t.Error("different labels should yield different IDs")
	}
	_ = g.End()
}

func TestPushPopID(t *testing.T) {
	g := ui.New(&mockRenderer{})
	ctx := g.Begin(ui.NewInputState(), ui.Vec2{X: 800, Y: 600}, 0.016)

	ctx.PushID("section1")
	id1 := ctx.GetID("item")
	ctx.PopID()

	ctx.PushID("section2")
	id2 := ctx.GetID("item")
	ctx.PopID()

	if id1 == id2 {
		t.Error("same label in different sections should have different IDs")
	}
	if ctx.CurrentID() != 0 {
		t.Error("ID stack should be empty after matching pops")
	}
	_ = g.End()
}

func TestStateStore(t *testing.T) {
	g := ui.New(&mockRenderer{})
	ctx := g.Begin(ui.NewInputState(), ui.Vec2{X: 800, Y: 600}, 0.016)

	id := ctx.GetID("test_state")
	ui.SetState(ctx, id, float32(42.5))

	if v := ui.GetState(ctx, id, float32(0)); v != 42.5 {
		t.Errorf("expected 42.5, got %v", v)
	}
	if v := ui.GetState(ctx, ctx.GetID("nonexistent"), float32(99)); v != 99 {
		t.Errorf("expected default 99, got %v", v)
	}
	if v := ui.GetState(ctx, id, "wrong type"); v != "wrong type" {
		t.Errorf("mismatched type should return default, got %v", v)
	}
	_ = g.End()
}

func TestStyles(t *testing.T) {
	for i, style := range []ui.Style{ui.DefaultStyle(), ui.AntStyle()} {
		if style.TextColor == 0 {
			t.Errorf("style %d has zero TextColor", i)
		}
		if style.CharWidth == 0 {
			t.Errorf("style %d has zero CharWidth", i)
		}
	}
}

func TestColorFunctions(t *testing.T) {
	c := ui.RGBA(255, 128, 64, 200)
	r, g, b, a := ui.UnpackRGBA(c)
	if r != 255 || g != 128 || b != 64 || a != 200 {
		t.Errorf("RGBA roundtrip failed: got %d,%d,%d,%d", r, g, b, a)
	}

	c2 := ui.RGBAf(1.0, 0.5, 0.25, 0.8)
	r2, g2, b2, a2 := ui.UnpackRGBA(c2)
	if r2 != 255 || g2 < 127 || g2 > 128 || b2 < 63 || b2 > 64 || a2 < 203 || a2 > 204 {
		t.Errorf("RGBAf conversion unexpected: got %d,%d,%d,%d", r2, g2, b2, a2)
	}
}

func TestKeyByName(t *testing.T) {
	cases := map[string]ui.Key{
		"F1":     ui.KeyF1,
		"F12":    ui.KeyF12,
		"f5":     ui.KeyF5,
		"RETURN": ui.KeyEnter,
		"ESC":    ui.KeyEscape,
		"F13":    ui.KeyNone,
		"Fx":     ui.KeyNone,
		"":       ui.KeyNone,
	}
	for name, want := range cases {
		if got := ui.KeyByName(name); got != want {
			t.Errorf("KeyByName(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestBuildFontAtlas(t *testing.T) {
	img := ui.BuildFontAtlas()
	b := img.Bounds()
	if b.Dx() != 16*ui.AtlasCellWidth || b.Dy() != 6*ui.AtlasCellHeight {
		t.Fatalf("unexpected atlas size %v", b)
	}

	// 'A' is glyph 33: column 1, row 2.
	lit := 0
	for y := 2 * ui.AtlasCellHeight; y < 3*ui.AtlasCellHeight; y++ {
		for x := ui.AtlasCellWidth; x < 2*ui.AtlasCellWidth; x++ {
			if img.AlphaAt(x, y).A > 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("glyph 'A' should have lit pixels")
	}

	// Space is glyph 0 and stays empty.
	for y := 0; y < ui.AtlasCellHeight; y++ {
		for x := 0; x < ui.AtlasCellWidth; x++ {
			if img.AlphaAt(x, y).A != 0 {
				t.Fatal("space glyph should be empty")
			}
		}
	}
}

func BenchmarkDrawListAddRect(b *testing.B) {
	dl := ui.AcquireDrawList()
	defer ui.ReleaseDrawList(dl)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dl.AddRect(float32(i%100), float32(i%100), 50, 50, ui.ColorWhite)
	}
}
