package tweakbar_test

import (
	"bytes"
	"testing"

	"github.com/go-theft-auto/tweakbar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBar_NewRejectsEmptyName(t *testing.T) {
	t.Parallel()

	_, err := tweakbar.New("")
	require.ErrorIs(t, err, tweakbar.ErrInvalidName)
}

func TestBar_DuplicateName(t *testing.T) {
	t.Parallel()

	bar := newBar(t)
	a, b := int32(1), int32(2)
	id, err := bar.AddVarRW("v", tweakbar.TypeInt32, &a, "")
	require.NoError(t, err)
	assert.NotZero(t, id)

	id, err = bar.AddVarRW("v", tweakbar.TypeInt32, &b, "")
	require.ErrorIs(t, err, tweakbar.ErrDuplicateName)
	assert.Zero(t, id)

	_, err = bar.AddButton("v", func(any) {}, nil, "")
	require.ErrorIs(t, err, tweakbar.ErrDuplicateName)

	// The first registration is untouched.
	s, err := bar.ValueToString("v")
	require.NoError(t, err)
	assert.Equal(t, "1", s)
}

func TestBar_InvalidNames(t *testing.T) {
	t.Parallel()

	bar := newBar(t)
	v := float32(0)

	_, err := bar.AddVarRW("", tweakbar.TypeFloat, &v, "")
	require.ErrorIs(t, err, tweakbar.ErrInvalidName)

	_, err = bar.AddVarRW("two words", tweakbar.TypeFloat, &v, "")
	require.ErrorIs(t, err, tweakbar.ErrInvalidName)

	// Whitespace is fine for names that never reach a file.
	_, err = bar.AddVarRW("two words", tweakbar.TypeFloat, &v, "", tweakbar.NoRecord())
	require.NoError(t, err)
	_, err = bar.AddVarRO("frame time", tweakbar.TypeFloat, &v, "")
	require.NoError(t, err)

	_, err = bar.AddButton("", func(any) {}, nil, "")
	require.ErrorIs(t, err, tweakbar.ErrInvalidName)

	// A recorded "#name" would save as a comment line.
	n := int32(7)
	_, err = bar.AddVarRW("#count", tweakbar.TypeInt32, &n, "")
	require.ErrorIs(t, err, tweakbar.ErrInvalidName)
	set, get := tweakbar.TypedCallbacks(func(int32) {}, func() int32 { return 0 })
	_, err = bar.AddVarCB("#cb", tweakbar.TypeInt32, set, get, nil, "")
	require.ErrorIs(t, err, tweakbar.ErrInvalidName)
	_, err = bar.AddVarRW("#count", tweakbar.TypeInt32, &n, "", tweakbar.NoRecord())
	require.NoError(t, err)
	_, err = bar.AddVarRW("count#2", tweakbar.TypeInt32, &n, "")
	require.NoError(t, err, "# is only special at the start")
}

func TestBar_StorageMustMatchType(t *testing.T) {
	t.Parallel()

	bar := newBar(t)
	f := float32(1)
	d := 1.0
	i := 3
	var col [4]float32

	cases := []struct {
		name string
		tag  tweakbar.TypeTag
		ptr  any
	}{
		{"float as double", tweakbar.TypeDouble, &f},
		{"double as float", tweakbar.TypeFloat, &d},
		{"int as int32", tweakbar.TypeInt32, &i},
		{"color4 as color3", tweakbar.TypeColor3F, &col},
		{"not a pointer", tweakbar.TypeFloat, f},
		{"nil pointer", tweakbar.TypeFloat, (*float32)(nil)},
	}
	for _, tc := range cases {
		_, err := bar.AddVarRW(tc.name, tc.tag, tc.ptr, "")
		assert.ErrorIs(t, err, tweakbar.ErrTypeMismatch, tc.name)
	}

	_, err := bar.AddVarRW("x", tweakbar.TypeTag(77), &f, "")
	require.ErrorIs(t, err, tweakbar.ErrUnknownType)
	_, err = bar.AddVarRW("y", tweakbar.TypeUndef, &f, "")
	require.ErrorIs(t, err, tweakbar.ErrUnknownType)
}

func TestBar_BadDefinition(t *testing.T) {
	t.Parallel()

	bar := newBar(t)
	v := float32(0)
	_, err := bar.AddVarRW("v", tweakbar.TypeFloat, &v, "label='open")
	require.ErrorIs(t, err, tweakbar.ErrBadDefinition)

	_, err = bar.AddVarRW("w", tweakbar.TypeFloat, &v, "colour=red")
	require.ErrorIs(t, err, tweakbar.ErrUnknownParam)

	// Neither failed registration was recorded.
	var buf bytes.Buffer
	require.NoError(t, bar.SaveTo(&buf))
	assert.Empty(t, buf.String())
}

func TestBar_ValueToStringAndSetValueFromString(t *testing.T) {
	t.Parallel()

	bar := newBar(t)
	light := tweakbar.Dir3{0, -1, 0}
	_, err := bar.AddVarRW("light", tweakbar.TypeDir3F, &light, "")
	require.NoError(t, err)

	s, err := bar.ValueToString("light")
	require.NoError(t, err)
	assert.Equal(t, "(0,-1,0)", s)

	require.NoError(t, bar.SetValueFromString("light", tweakbar.TypeDir3F, "(1,0.5,-0.25)"))
	assert.Equal(t, tweakbar.Dir3{1, 0.5, -0.25}, light)

	err = bar.SetValueFromString("light", tweakbar.TypeColor3F, "(1,1,1)")
	require.ErrorIs(t, err, tweakbar.ErrTypeMismatch)

	err = bar.SetValueFromString("light", tweakbar.TypeDir3F, "(1,1)")
	require.ErrorIs(t, err, tweakbar.ErrParse)
	assert.Equal(t, tweakbar.Dir3{1, 0.5, -0.25}, light, "failed parse leaves the value alone")

	_, err = bar.ValueToString("nope")
	require.ErrorIs(t, err, tweakbar.ErrUnknownVar)
	err = bar.SetValueFromString("nope", tweakbar.TypeDir3F, "(1,1,1)")
	require.ErrorIs(t, err, tweakbar.ErrUnknownVar)
}

func TestBar_CallbackVars(t *testing.T) {
	t.Parallel()

	bar := newBar(t)

	_, err := bar.AddVarCB("noget", tweakbar.TypeFloat, func(any, any) {}, nil, nil, "")
	require.Error(t, err)

	type light struct{ intensity float32 }
	l := &light{intensity: 2}
	set, get := tweakbar.TypedCallbacks(
		func(v float32) { l.intensity = v },
		func() float32 { return l.intensity },
	)
	_, err = bar.AddVarCB("intensity", tweakbar.TypeFloat, set, get, nil, "min=0 max=4")
	require.NoError(t, err)

	s, err := bar.ValueToString("intensity")
	require.NoError(t, err)
	assert.Equal(t, "2", s)

	require.NoError(t, bar.SetValueFromString("intensity", tweakbar.TypeFloat, "3.5"))
	assert.Equal(t, float32(3.5), l.intensity)
}

func TestBar_GetterMayReturnLooseTypes(t *testing.T) {
	t.Parallel()

	bar := newBar(t)
	_, err := bar.AddVarCB("count", tweakbar.TypeInt32,
		func(any, any) {},
		func(any) any { return 12 }, nil, "")
	require.NoError(t, err)

	s, err := bar.ValueToString("count")
	require.NoError(t, err)
	assert.Equal(t, "12", s)
}

func TestBar_NamedStorageTypes(t *testing.T) {
	t.Parallel()

	type Quality int32
	type Tint [3]float32

	bar := newBar(t)
	q, err := bar.DefineEnum("Quality", []tweakbar.EnumVal{{Value: 0, Label: "Low"}, {Value: 2, Label: "High"}})
	require.NoError(t, err)

	quality := Quality(2)
	tint := Tint{1, 0, 0}
	_, err = bar.AddVarRW("quality", q, &quality, "")
	require.NoError(t, err)
	_, err = bar.AddVarRW("tint", tweakbar.TypeColor3F, &tint, "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, bar.SaveTo(&buf))
	assert.Equal(t, "quality Quality High\ntint COLOR3F (1,0,0)\n", buf.String())
}

func TestBar_NewBarKeepsRecords(t *testing.T) {
	t.Parallel()

	bar := newBar(t)
	a := int32(1)
	_, err := bar.AddVarRW("a", tweakbar.TypeInt32, &a, "")
	require.NoError(t, err)

	require.NoError(t, bar.NewBar("Second"))
	assert.Equal(t, "Second", bar.Name())

	var buf bytes.Buffer
	require.NoError(t, bar.SaveTo(&buf))
	assert.Equal(t, "a INT32 1\n", buf.String())

	// Registering the name again on the new bar replaces the record.
	b := int32(5)
	_, err = bar.AddVarRW("a", tweakbar.TypeInt32, &b, "")
	require.NoError(t, err)

	buf.Reset()
	require.NoError(t, bar.SaveTo(&buf))
	assert.Equal(t, "a INT32 5\n", buf.String())

	require.ErrorIs(t, bar.NewBar(""), tweakbar.ErrInvalidName)
}

func TestBar_Params(t *testing.T) {
	t.Parallel()

	bar := newBar(t)
	v := float32(0)
	_, err := bar.AddVarRW("v", tweakbar.TypeFloat, &v, "min=0 max=10 label='Speed factor' group=Motion")
	require.NoError(t, err)

	got, err := bar.GetParam("v", "label")
	require.NoError(t, err)
	assert.Equal(t, []string{"Speed factor"}, got)

	got, err = bar.GetParam("v", "max")
	require.NoError(t, err)
	assert.Equal(t, []string{"10"}, got)

	got, err = bar.GetParam("v", "step")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, bar.SetParam("v", "step", "0.5"))
	got, err = bar.GetParam("v", "step")
	require.NoError(t, err)
	assert.Equal(t, []string{"0.5"}, got)

	got, err = bar.GetParam("v", "readonly")
	require.NoError(t, err)
	assert.Equal(t, []string{"false"}, got)

	require.ErrorIs(t, bar.SetParam("v", "step", "fast"), tweakbar.ErrParse)
	require.ErrorIs(t, bar.SetParam("v", "precision", "13"), tweakbar.ErrParse)
	require.ErrorIs(t, bar.SetParam("v", "key", "SPACEBAR"), tweakbar.ErrParse)
	require.ErrorIs(t, bar.SetParam("v", "colour", "red"), tweakbar.ErrUnknownParam)
	require.ErrorIs(t, bar.SetParam("w", "label", "x"), tweakbar.ErrUnknownVar)
	_, err = bar.GetParam("v", "colour")
	require.ErrorIs(t, err, tweakbar.ErrUnknownParam)

	// Groups are addressed by name.
	got, err = bar.GetParam("Motion", "opened")
	require.NoError(t, err)
	assert.Equal(t, []string{"true"}, got)
	require.NoError(t, bar.SetParam("Motion", "opened", "false"))
	got, err = bar.GetParam("Motion", "opened")
	require.NoError(t, err)
	assert.Equal(t, []string{"false"}, got)

	// The bar itself is "" or its name.
	require.NoError(t, bar.SetParam("", "position", "40", "60"))
	got, err = bar.GetParam("Test", "position")
	require.NoError(t, err)
	assert.Equal(t, []string{"40", "60"}, got)

	got, err = bar.GetParam("", "label")
	require.NoError(t, err)
	assert.Equal(t, []string{"Test"}, got)

	require.ErrorIs(t, bar.SetParam("", "size", "wide"), tweakbar.ErrParse)
	require.ErrorIs(t, bar.SetParam("", "refresh", "-1"), tweakbar.ErrParse)
	require.ErrorIs(t, bar.SetParam("", "alpha", "10"), tweakbar.ErrUnknownParam)
}

func TestBar_SeparatorsAndButtonsGetIDs(t *testing.T) {
	t.Parallel()

	bar := newBar(t)
	ids := map[tweakbar.ID]bool{}
	for i := 0; i < 2; i++ {
		id, err := bar.AddSeparator("", "")
		require.NoError(t, err)
		ids[id] = true
	}
	id, err := bar.AddButton("go", func(any) {}, nil, "help='Run it'")
	require.NoError(t, err)
	ids[id] = true

	assert.Len(t, ids, 3)
	assert.NotContains(t, ids, tweakbar.ID(0))
}

func TestBar_ReadOnlyCallbackRejectsStore(t *testing.T) {
	t.Parallel()

	bar := newBar(t)
	_, err := bar.AddVarCB("fps", tweakbar.TypeFloat, nil, func(any) any { return float32(60) }, nil, "")
	require.NoError(t, err)

	got, err := bar.GetParam("fps", "readonly")
	require.NoError(t, err)
	assert.Equal(t, []string{"true"}, got)

	_, err = bar.ValueToString("fps")
	require.ErrorIs(t, err, tweakbar.ErrUnknownVar)
}
