package tweakbar_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-theft-auto/tweakbar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBar returns a bar on the default panel with logs discarded.
func newBar(t *testing.T, opts ...tweakbar.Option) *tweakbar.Bar {
	t.Helper()
	quiet := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	bar, err := tweakbar.New("Test", append([]tweakbar.Option{tweakbar.WithLogger(quiet)}, opts...)...)
	require.NoError(t, err)
	return bar
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// TestPersist_SpeedEnabled saves two variables, mutates them and loads the
// file back.
func TestPersist_SpeedEnabled(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	bar := newBar(t)
	speed := float32(1.5)
	enabled := true
	_, err := bar.AddVarRW("speed", tweakbar.TypeFloat, &speed, "")
	require.NoError(t, err)
	_, err = bar.AddVarRW("enabled", tweakbar.TypeBoolCPP, &enabled, "")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "bar.tw")

	// --- Act ---
	require.NoError(t, bar.Save(path))
	speed, enabled = 9, false
	rep, err := bar.Load(path)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{"speed FLOAT 1.5", "enabled BOOLCPP true"}, readLines(t, path))
	assert.Equal(t, float32(1.5), speed)
	assert.True(t, enabled)
	assert.Equal(t, 2, rep.Applied)
	assert.Empty(t, rep.Missing)
	assert.Empty(t, rep.Errors)
}

func TestPersist_EnumMode(t *testing.T) {
	t.Parallel()

	bar := newBar(t)
	mode, err := bar.DefineEnum("Mode", []tweakbar.EnumVal{{Value: 0, Label: "Fast"}, {Value: 1, Label: "Slow"}})
	require.NoError(t, err)
	m := int32(1)
	_, err = bar.AddVarRW("mode", mode, &m, "")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "mode.tw")

	require.NoError(t, bar.Save(path))
	assert.Equal(t, []string{"mode Mode Slow"}, readLines(t, path))

	m = 0
	_, err = bar.Load(path)
	require.NoError(t, err)
	assert.Equal(t, int32(1), m)
}

// TestPersist_AllTypesRestore registers one variable of every type, saves,
// overwrites all of them and checks Load restores every value exactly.
func TestPersist_AllTypesRestore(t *testing.T) {
	t.Parallel()

	type Level int32
	bar := newBar(t)
	levelTag, err := bar.DefineEnum("Level", []tweakbar.EnumVal{{Value: 10, Label: "Low"}, {Value: 20, Label: "High"}})
	require.NoError(t, err)

	var (
		b      = true
		b32    = int32(1)
		i      = int32(-12345)
		f      = float32(0.1)
		d      = 1.0 / 3.0
		dir    = tweakbar.Dir3{0.5, -1, 0.25}
		col3   = [3]float32{1, 0.5, 0}
		col4   = tweakbar.Color4{0.2, 0.4, 0.6, 0.8}
		quat   = tweakbar.Quat4{0, 0, 0.70710677, 0.70710677}
		level  = Level(20)
		cbVal  = float32(-2.75)
		orig   = []any{}
		record = func() []any { return []any{b, b32, i, f, d, dir, col3, col4, quat, level, cbVal} }
	)
	for _, reg := range []struct {
		name string
		tag  tweakbar.TypeTag
		ptr  any
	}{
		{"b", tweakbar.TypeBoolCPP, &b},
		{"b32", tweakbar.TypeBool32, &b32},
		{"i", tweakbar.TypeInt32, &i},
		{"f", tweakbar.TypeFloat, &f},
		{"d", tweakbar.TypeDouble, &d},
		{"dir", tweakbar.TypeDir3F, &dir},
		{"col3", tweakbar.TypeColor3F, &col3},
		{"col4", tweakbar.TypeColor4F, &col4},
		{"quat", tweakbar.TypeQuat4F, &quat},
		{"level", levelTag, &level},
	} {
		_, err := bar.AddVarRW(reg.name, reg.tag, reg.ptr, "")
		require.NoError(t, err, reg.name)
	}
	set, get := tweakbar.TypedCallbacks(func(v float32) { cbVal = v }, func() float32 { return cbVal })
	_, err = bar.AddVarCB("cb", tweakbar.TypeFloat, set, get, nil, "")
	require.NoError(t, err)

	orig = record()
	var buf bytes.Buffer
	require.NoError(t, bar.SaveTo(&buf))

	b, b32, i, f, d = false, 0, 0, 0, 0
	dir, col3, col4, quat = tweakbar.Dir3{}, [3]float32{}, tweakbar.Color4{}, tweakbar.Quat4{}
	level, cbVal = 10, 0

	rep, err := bar.LoadFrom(&buf)
	require.NoError(t, err)
	assert.Equal(t, 11, rep.Applied)
	assert.Empty(t, rep.Errors)
	assert.Equal(t, orig, record())
}

func TestPersist_CallbacksAfterDirect(t *testing.T) {
	t.Parallel()

	bar := newBar(t)
	var a, c int32 = 1, 3
	cb := int32(2)
	_, err := bar.AddVarRW("a", tweakbar.TypeInt32, &a, "")
	require.NoError(t, err)
	_, err = bar.AddVarCB("cb", tweakbar.TypeInt32,
		func(v any, _ any) { cb = v.(int32) },
		func(any) any { return cb }, nil, "")
	require.NoError(t, err)
	_, err = bar.AddVarRW("c", tweakbar.TypeInt32, &c, "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, bar.SaveTo(&buf))
	assert.Equal(t, "a INT32 1\nc INT32 3\ncb INT32 2\n", buf.String())
}

func TestPersist_ClientDataReachesCallbacks(t *testing.T) {
	t.Parallel()

	bar := newBar(t)
	store := map[string]any{"gain": float64(0.5)}
	_, err := bar.AddVarCB("gain", tweakbar.TypeDouble,
		func(v any, cd any) { cd.(map[string]any)["gain"] = v },
		func(cd any) any { return cd.(map[string]any)["gain"] },
		store, "")
	require.NoError(t, err)

	_, err = bar.LoadFrom(strings.NewReader("gain DOUBLE 0.125\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.125, store["gain"])
}

func TestPersist_ReadOnlyButtonsAndNoRecordNotSaved(t *testing.T) {
	t.Parallel()

	bar := newBar(t)
	kept, hidden, ro := int32(1), int32(2), int32(3)
	_, err := bar.AddVarRW("kept", tweakbar.TypeInt32, &kept, "")
	require.NoError(t, err)
	_, err = bar.AddVarRW("hidden", tweakbar.TypeInt32, &hidden, "", tweakbar.NoRecord())
	require.NoError(t, err)
	_, err = bar.AddVarRO("ro", tweakbar.TypeInt32, &ro, "")
	require.NoError(t, err)
	_, err = bar.AddButton("reset", func(any) {}, nil, "")
	require.NoError(t, err)
	_, err = bar.AddVarCB("cbro", tweakbar.TypeInt32, nil, func(any) any { return int32(4) }, nil, "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, bar.SaveTo(&buf))
	assert.Equal(t, "kept INT32 1\n", buf.String())

	// Unrecorded names are a lookup miss on load.
	rep, err := bar.LoadFrom(strings.NewReader("hidden INT32 20\nro INT32 30\nreset INT32 1\ncbro INT32 40\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"hidden", "ro", "reset", "cbro"}, rep.Missing)
	assert.Empty(t, rep.Errors)
	assert.Equal(t, int32(2), hidden)
	assert.Equal(t, int32(3), ro)
}

func TestPersist_LoadBestEffort(t *testing.T) {
	t.Parallel()

	bar := newBar(t)
	a, b, c, d := int32(0), float32(0), true, int32(0)
	_, err := bar.AddVarRW("a", tweakbar.TypeInt32, &a, "")
	require.NoError(t, err)
	_, err = bar.AddVarRW("b", tweakbar.TypeFloat, &b, "")
	require.NoError(t, err)
	_, err = bar.AddVarRW("c", tweakbar.TypeBoolCPP, &c, "")
	require.NoError(t, err)
	_, err = bar.AddVarRW("d", tweakbar.TypeInt32, &d, "")
	require.NoError(t, err)

	file := strings.Join([]string{
		"# saved by hand",
		"",
		"gone FLOAT 3",        // lookup miss
		"a Vec9 1",            // unknown type
		"a INT32 7",           // applied
		"b INT32 2",           // type differs from registration
		"b FLOAT nope",        // bad value
		"b TW_TYPE_FLOAT 2.5", // applied, prefixed type
		"c BOOLCPP",           // too few fields
		"c BOOLCPP false",     // applied
		"d INT32 4",           // applied
	}, "\n")

	rep, err := bar.LoadFrom(strings.NewReader(file))
	require.NoError(t, err)

	assert.Equal(t, int32(7), a)
	assert.Equal(t, float32(2.5), b)
	assert.False(t, c)
	assert.Equal(t, int32(4), d)
	assert.Equal(t, 4, rep.Applied)
	assert.Equal(t, []string{"gone"}, rep.Missing)
	require.Len(t, rep.Errors, 4)

	var le *tweakbar.LineError
	require.ErrorAs(t, rep.Errors[0], &le)
	assert.Equal(t, 4, le.Line)
	assert.ErrorIs(t, rep.Errors[0], tweakbar.ErrUnknownType)
	assert.ErrorIs(t, rep.Errors[1], tweakbar.ErrTypeMismatch)
	assert.ErrorIs(t, rep.Errors[2], tweakbar.ErrParse)
	assert.ErrorIs(t, rep.Errors[3], tweakbar.ErrParse)
}

func TestPersist_SaveOpenFailureWritesNothing(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	bar := newBar(t, tweakbar.WithStdout(&stdout))
	v := int32(1)
	_, err := bar.AddVarRW("v", tweakbar.TypeInt32, &v, "")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "missing-dir", "bar.tw")
	err = bar.Save(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NoFileExists(t, path)
	assert.Zero(t, stdout.Len())
}

func TestPersist_SaveEmptyPathWritesStdout(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	bar := newBar(t, tweakbar.WithStdout(&stdout))
	v := float32(-0.5)
	_, err := bar.AddVarRW("v", tweakbar.TypeFloat, &v, "")
	require.NoError(t, err)

	require.NoError(t, bar.Save(""))
	assert.Equal(t, "v FLOAT -0.5\n", stdout.String())
}

func TestPersist_SaveTruncates(t *testing.T) {
	t.Parallel()

	bar := newBar(t)
	v := int32(5)
	_, err := bar.AddVarRW("v", tweakbar.TypeInt32, &v, "")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "bar.tw")
	require.NoError(t, os.WriteFile(path, []byte("old line one\nold line two\nold line three\n"), 0o644))
	require.NoError(t, bar.Save(path))
	assert.Equal(t, []string{"v INT32 5"}, readLines(t, path))
}

func TestPersist_LoadMissingFile(t *testing.T) {
	t.Parallel()

	bar := newBar(t)
	_, err := bar.Load(filepath.Join(t.TempDir(), "nope.tw"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestPersist_UndefinedEnumValueSkippedOnSave(t *testing.T) {
	t.Parallel()

	bar := newBar(t)
	mode, err := bar.DefineEnum("Mode", []tweakbar.EnumVal{{Value: 0, Label: "Fast"}})
	require.NoError(t, err)
	m, n := int32(9), int32(1)
	_, err = bar.AddVarRW("mode", mode, &m, "")
	require.NoError(t, err)
	_, err = bar.AddVarRW("n", tweakbar.TypeInt32, &n, "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, bar.SaveTo(&buf))
	assert.Equal(t, "n INT32 1\n", buf.String())
}

func TestPersist_SharedTypeTable(t *testing.T) {
	t.Parallel()

	types := tweakbar.NewTypeTable()
	mode, err := types.DefineEnum("Mode", []tweakbar.EnumVal{{Value: 0, Label: "Fast"}, {Value: 1, Label: "Slow"}})
	require.NoError(t, err)

	src := newBar(t, tweakbar.WithTypeTable(types))
	dst := newBar(t, tweakbar.WithTypeTable(types))
	a, b := int32(1), int32(0)
	_, err = src.AddVarRW("mode", mode, &a, "")
	require.NoError(t, err)
	_, err = dst.AddVarRW("mode", mode, &b, "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, src.SaveTo(&buf))
	_, err = dst.LoadFrom(&buf)
	require.NoError(t, err)
	assert.Equal(t, int32(1), b)
}

func TestPersist_LongLineDoesNotStopLoad(t *testing.T) {
	t.Parallel()
	bar := newBar(t)
	a, b := int32(1), int32(2)
	_, err := bar.AddVarRW("a", tweakbar.TypeInt32, &a, "")
	require.NoError(t, err)
	_, err = bar.AddVarRW("b", tweakbar.TypeInt32, &b, "")
	require.NoError(t, err)

	in := "a INT32 10\n" +
		"junk FLOAT " + strings.Repeat("9", 70000) + "\n" +
		"a FLOAT " + strings.Repeat("1", 70000) + "\n" +
		"b INT32 20" // no trailing newline
	rep, err := bar.LoadFrom(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Applied)
	assert.Equal(t, []string{"junk"}, rep.Missing)
	require.Len(t, rep.Errors, 1)
	var le *tweakbar.LineError
	require.ErrorAs(t, rep.Errors[0], &le)
	assert.Equal(t, 3, le.Line)
	assert.ErrorIs(t, le, tweakbar.ErrTypeMismatch)
	assert.Equal(t, int32(10), a)
	assert.Equal(t, int32(20), b)
}
