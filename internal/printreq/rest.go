package printreq

import (
	"github.com/five82/labelprint/internal/label"
)

// REST builds PrintMyBarcode style requests:
//
//	{"data":{"attributes":{"printer_name":...,"label_template_id":...,"labels":{"body":[{"label":{...}}]}}}}
//
// When SingleField is set every label is emitted as {SingleField: name},
// where the name holds the raw pasted line. Otherwise Mapping decides which
// fields appear and under which keys.
type REST struct {
	TemplateID  int
	Mapping     Mapping
	SingleField string
}

var _ Builder = REST{}

type restRequest struct {
	Data restData `json:"data"`
}

type restData struct {
	Attributes restAttributes `json:"attributes"`
}

type restAttributes struct {
	PrinterName     string     `json:"printer_name"`
	LabelTemplateID int        `json:"label_template_id"`
	Labels          restLabels `json:"labels"`
}

type restLabels struct {
	Body []restLabel `json:"body"`
}

type restLabel struct {
	Label orderedObject `json:"label"`
}

// Build implements Builder.
func (r REST) Build(labels []label.Label, printer string) ([]byte, error) {
	if err := checkInputs(labels, printer); err != nil {
		return nil, err
	}
	body := make([]restLabel, 0, len(labels))
	for _, l := range labels {
		body = append(body, restLabel{Label: r.fields(l)})
	}
	return encode(restRequest{Data: restData{Attributes: restAttributes{
		PrinterName:     printer,
		LabelTemplateID: r.TemplateID,
		Labels:          restLabels{Body: body},
	}}})
}

func (r REST) fields(l label.Label) orderedObject {
	if r.SingleField != "" {
		return orderedObject{{key: r.SingleField, value: l.Name()}}
	}
	var obj orderedObject
	for _, f := range Fields {
		name := r.Mapping[f]
		if name == "" {
			continue
		}
		if value, ok := f.Value(l); ok {
			obj = append(obj, member{key: name, value: value})
		}
	}
	return obj
}
