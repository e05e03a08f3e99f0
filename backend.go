package tweakbar

// Backend is the widget library a Bar drives. It draws variables, reports
// edits through each variable's Slot and owns parameters. Backends reject
// duplicate names with ErrDuplicateName and unknown names with ErrUnknownVar.
//
// Enum literals reach backends through VarSpec.Types, the same table that
// resolves enum names in settings files.
type Backend interface {
	// NewBar (re)creates the bar, dropping everything added to it.
	NewBar(name string) error

	AddVar(spec VarSpec) (ID, error)
	AddButton(spec ButtonSpec) (ID, error)
	AddSeparator(name string, def Definition) (ID, error)

	// SetParam and GetParam address the bar itself when varName is "" or
	// the bar name.
	SetParam(varName, param string, values []string) error
	GetParam(varName, param string) ([]string, error)

	// Refresh makes the backend re-read every slot.
	Refresh() error
}

// VarSpec describes a variable handed to a Backend.
type VarSpec struct {
	Name     string
	Type     TypeTag
	Types    *TypeTable
	Slot     Slot
	ReadOnly bool
	Def      Definition
}

// ButtonSpec describes a button handed to a Backend. A nil Func draws the
// name as plain text.
type ButtonSpec struct {
	Name       string
	Func       ButtonFunc
	ClientData any
	Def        Definition
}
