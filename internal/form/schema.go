package form

// Mode selects which variant of a form is built.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

func ParseMode(value string) (Mode, bool) {
	switch Mode(value) {
	case ModeCreate:
		return ModeCreate, true
	case ModeEdit:
		return ModeEdit, true
	}
	return "", false
}

type FieldType string

const (
	FieldText        FieldType = "text"
	FieldEmail       FieldType = "email"
	FieldPassword    FieldType = "password"
	FieldMultiSelect FieldType = "multi_select"
	FieldToggle      FieldType = "toggle"
)

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Field struct {
	Name       string    `json:"name"`
	Type       FieldType `json:"type"`
	Label      string    `json:"label"`
	Required   bool      `json:"required"`
	MaxLength  int       `json:"max_length,omitempty"`
	Unique     bool      `json:"unique,omitempty"`
	SameAs     string    `json:"same_as,omitempty"`
	Searchable bool      `json:"searchable,omitempty"`
	Options    []Option  `json:"options,omitempty"`
}

type Schema struct {
	Mode   Mode    `json:"mode"`
	Fields []Field `json:"fields"`
}

// UserSchema describes the user form for mode. Password fields exist only when
// creating and the verified toggle only when editing.
func UserSchema(mode Mode, roleOptions []Option) Schema {
	fields := []Field{
		{Name: "name", Type: FieldText, Label: "Name", Required: true, MaxLength: 255},
		{Name: "email", Type: FieldEmail, Label: "Email", Required: true, MaxLength: 255, Unique: true},
	}
	if mode == ModeCreate {
		fields = append(fields,
			Field{Name: "password", Type: FieldPassword, Label: "Password", Required: true},
			Field{Name: "password_confirmation", Type: FieldPassword, Label: "Password confirmation", Required: true, SameAs: "password"},
		)
	}
	fields = append(fields, Field{
		Name:       "roles",
		Type:       FieldMultiSelect,
		Label:      "Roles",
		Searchable: true,
		Options:    roleOptions,
	})
	if mode == ModeEdit {
		fields = append(fields, Field{Name: "verified", Type: FieldToggle, Label: "Verified"})
	}
	return Schema{Mode: mode, Fields: fields}
}
