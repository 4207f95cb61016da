package content

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/intranet-api/internal/domain"
	"github.com/jhoicas/intranet-api/internal/domain/entity"
)

// Campos editables del documento de sección. Claves fuera de este conjunto se ignoran:
// no se agregan campos nuevos ni se permite tocar section, history o version.
const (
	FieldMission           = "mission"
	FieldVision            = "vision"
	FieldCorporateValues   = "corporateValues"
	FieldDiagnostic        = "diagnostic"
	FieldSpecificObjective = "specificObjective"
	FieldTools             = "tools"
)

func editableFields(c *entity.Content) map[string]any {
	return map[string]any{
		FieldMission:           &c.Mission,
		FieldVision:            &c.Vision,
		FieldCorporateValues:   &c.CorporateValues,
		FieldDiagnostic:        &c.Diagnostic,
		FieldSpecificObjective: &c.SpecificObjective,
		FieldTools:             &c.Tools,
	}
}

type pendingChange struct {
	target reflect.Value
	value  reflect.Value
	entry  entity.HistoryEntry
}

// ApplyUpdates aplica updates sobre c y devuelve una entrada de historial por cada campo
// cuyo valor cambió (igualdad estructural). Primero decodifica y valida todo; si algún
// valor tiene forma inválida devuelve ErrValidation sin modificar c.
func ApplyUpdates(c *entity.Content, updates map[string]any, changedBy string, now time.Time) ([]entity.HistoryEntry, error) {
	fields := editableFields(c)

	keys := make([]string, 0, len(updates))
	for k := range updates {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var pending []pendingChange
	for _, key := range keys {
		ptr, ok := fields[key]
		if !ok {
			continue
		}
		target := reflect.ValueOf(ptr).Elem()
		fresh, err := decodeInto(target.Type(), updates[key])
		if err != nil {
			return nil, fmt.Errorf("%w: campo %s: %v", domain.ErrValidation, key, err)
		}
		if key == FieldTools {
			if err := validateTools(fresh.Interface().([]entity.ToolLink)); err != nil {
				return nil, fmt.Errorf("%w: campo %s: %v", domain.ErrValidation, key, err)
			}
		}
		oldStr := Serialize(target.Interface())
		newStr := Serialize(fresh.Interface())
		if oldStr == newStr {
			continue
		}
		pending = append(pending, pendingChange{
			target: target,
			value:  fresh,
			entry: entity.HistoryEntry{
				Field:      key,
				OldValue:   oldStr,
				NewValue:   newStr,
				ChangedBy:  changedBy,
				ChangeDate: now,
			},
		})
	}

	entries := make([]entity.HistoryEntry, 0, len(pending))
	for _, p := range pending {
		p.target.Set(p.value)
		entries = append(entries, p.entry)
	}
	return entries, nil
}

// decodeInto convierte un valor JSON genérico al tipo del campo destino.
func decodeInto(t reflect.Type, v any) (reflect.Value, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return reflect.Value{}, err
	}
	fresh := reflect.New(t)
	if err := json.Unmarshal(raw, fresh.Interface()); err != nil {
		return reflect.Value{}, err
	}
	out := fresh.Elem()
	if out.Kind() == reflect.Slice && out.IsNil() {
		out = reflect.MakeSlice(t, 0, 0)
	}
	return out, nil
}

func validateTools(tools []entity.ToolLink) error {
	for i := range tools {
		if strings.TrimSpace(tools[i].Name) == "" {
			return fmt.Errorf("herramienta %d sin nombre", i)
		}
		if tools[i].Type == "" {
			tools[i].Type = entity.LinkTypeText
		}
		if !IsValidLinkType(tools[i].Type) {
			return fmt.Errorf("herramienta %q con tipo %q inválido", tools[i].Name, tools[i].Type)
		}
	}
	return nil
}

// Serialize convierte un valor de campo a texto para el historial:
// los strings se guardan tal cual; listas y objetos como JSON compacto.
func Serialize(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		v = reflect.MakeSlice(rv.Type(), 0, 0).Interface()
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(raw)
}
