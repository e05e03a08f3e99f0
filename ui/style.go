package ui

// Style defines the visual appearance of UI elements.
type Style struct {
	TextColor         uint32
	TextDisabledColor uint32

	PanelColor           uint32
	PanelBorderColor     uint32
	PanelHeaderBgColor   uint32 // 0 = use ButtonColor
	PanelHeaderTextColor uint32 // 0 = use TextColor

	ButtonColor         uint32
	ButtonHoveredColor  uint32
	ButtonActiveColor   uint32
	ButtonDisabledColor uint32

	HoveredBgColor uint32

	InputBgColor        uint32
	InputFocusedBgColor uint32
	InputBorderColor    uint32

	SeparatorColor uint32

	SliderTrackColor  uint32
	SliderFillColor   uint32
	SliderGrabColor   uint32
	SliderGrabHovered uint32
	SliderGrabActive  uint32

	DropdownBgColor uint32
	ComboArrowColor uint32

	TooltipBgColor uint32

	// Sizing
	FontScale     float32
	CharWidth     float32
	CharHeight    float32
	ItemSpacing   float32
	PanelPadding  float32
	ButtonPadding float32
	LabelWidth    float32 // Column reserved for variable labels (0 = measure)
	ControlWidth  float32 // Default width of sliders and fields

	BorderSize float32
}

// DefaultStyle returns a neutral dark style.
func DefaultStyle() Style {
	return Style{
		TextColor:         ColorWhite,
		TextDisabledColor: ColorGray,

		PanelColor:         RGBA(20, 20, 20, 200),
		PanelBorderColor:   RGBA(80, 80, 80, 255),
		PanelHeaderBgColor: RGBA(40, 40, 45, 255),

		ButtonColor:         RGBA(50, 50, 50, 255),
		ButtonHoveredColor:  RGBA(70, 70, 70, 255),
		ButtonActiveColor:   RGBA(90, 90, 90, 255),
		ButtonDisabledColor: RGBA(30, 30, 30, 255),

		HoveredBgColor: RGBA(60, 60, 60, 255),

		InputBgColor:        RGBA(30, 30, 30, 255),
		InputFocusedBgColor: RGBA(40, 40, 50, 255),
		InputBorderColor:    RGBA(100, 100, 100, 255),

		SeparatorColor: RGBA(80, 80, 80, 255),

		SliderTrackColor:  RGBA(40, 40, 40, 255),
		SliderFillColor:   RGBA(50, 100, 150, 255),
		SliderGrabColor:   RGBA(100, 100, 100, 255),
		SliderGrabHovered: RGBA(120, 120, 120, 255),
		SliderGrabActive:  RGBA(140, 140, 140, 255),

		DropdownBgColor: RGBA(25, 25, 25, 250),
		ComboArrowColor: RGBA(200, 200, 200, 255),

		TooltipBgColor: RGBA(10, 10, 10, 240),

		FontScale:     1,
		CharWidth:     8,
		CharHeight:    16,
		ItemSpacing:   4,
		PanelPadding:  8,
		ButtonPadding: 3,
		LabelWidth:    0,
		ControlWidth:  140,

		BorderSize: 1,
	}
}

// AntStyle is a translucent blue-gray style in the manner of classic
// in-engine tweak bars.
func AntStyle() Style {
	s := DefaultStyle()
	s.PanelColor = RGBA(17, 51, 85, 170)
	s.PanelBorderColor = RGBA(90, 130, 170, 255)
	s.PanelHeaderBgColor = RGBA(34, 85, 136, 230)
	s.PanelHeaderTextColor = RGBA(255, 255, 210, 255)
	s.ButtonColor = RGBA(40, 70, 100, 230)
	s.ButtonHoveredColor = RGBA(60, 100, 140, 255)
	s.ButtonActiveColor = RGBA(90, 140, 190, 255)
	s.InputBgColor = RGBA(15, 35, 55, 230)
	s.InputFocusedBgColor = RGBA(25, 55, 85, 255)
	s.InputBorderColor = RGBA(90, 130, 170, 255)
	s.SeparatorColor = RGBA(90, 130, 170, 160)
	s.SliderTrackColor = RGBA(15, 35, 55, 230)
	s.SliderFillColor = RGBA(70, 130, 190, 255)
	s.SliderGrabColor = RGBA(150, 190, 230, 255)
	s.SliderGrabHovered = RGBA(180, 210, 240, 255)
	s.SliderGrabActive = RGBA(220, 235, 255, 255)
	s.DropdownBgColor = RGBA(10, 30, 50, 250)
	s.LabelWidth = 120
	return s
}
