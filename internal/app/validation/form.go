package validation

// Field names used by the registration and profile forms.
const (
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldFullName  = "full_name"
	FieldPhone     = "phone"
	FieldGender    = "gender"
	FieldBirthDate = "birth_date"
	FieldStreet    = "street"
	FieldNumber    = "number"
	FieldCity      = "city"
	FieldRegion    = "region"
	FieldCommune   = "commune"
)

// Validator maps a raw field value to an error message ("" = accepted).
type Validator func(string) string

// Rules assigns each known field its governing validator.
var Rules = map[string]Validator{
	FieldEmail:     Email,
	FieldPassword:  Password,
	FieldFullName:  FullName,
	FieldPhone:     Phone,
	FieldGender:    Required,
	FieldBirthDate: BirthDate,
	FieldStreet:    Required,
	FieldNumber:    AddressNumber,
	FieldCity:      Required,
	FieldRegion:    Required,
	FieldCommune:   Required,
}

// Form accumulates field values and their last validation results across a
// multi-step flow. It is transient, in-memory state; it is never persisted.
type Form struct {
	values map[string]string
	errors map[string]string
}

// NewForm creates an empty form.
func NewForm() *Form {
	return &Form{
		values: make(map[string]string),
		errors: make(map[string]string),
	}
}

// SetField records a new value for the field and re-runs its validator.
// Fields without a registered rule are stored without validation.
func (f *Form) SetField(name, value string) {
	f.values[name] = value
	if rule, ok := Rules[name]; ok {
		if msg := rule(value); msg != "" {
			f.errors[name] = msg
		} else {
			delete(f.errors, name)
		}
	}
}

// Value returns the current value of a field.
func (f *Form) Value(name string) string {
	return f.values[name]
}

// FieldError returns the last validation message for the field, or "".
func (f *Form) FieldError(name string) string {
	return f.errors[name]
}

// Errors returns a copy of all current field errors.
func (f *Form) Errors() map[string]string {
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Submittable reports whether every listed field has been filled in and
// passed its last validation. Blank required fields gate submission even if
// they were never edited.
func (f *Form) Submittable(fields ...string) bool {
	for _, name := range fields {
		if f.errors[name] != "" {
			return false
		}
		if f.values[name] == "" {
			return false
		}
	}
	return true
}

// RegistrationFields lists every field the registration wizard collects, in
// step order.
func RegistrationFields() []string {
	return []string{
		FieldEmail, FieldPassword,
		FieldFullName, FieldPhone, FieldGender, FieldBirthDate,
		FieldStreet, FieldNumber, FieldCommune, FieldCity, FieldRegion,
	}
}
