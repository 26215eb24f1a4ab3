package adapters

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
)

func jsonProcessor(a any) any {
	b, ok := a.([]byte)
	if !ok {
		return a
	}

	return newJSONResponse(b)
}

// jsonResponse serves as a wrapper around the json response
// to pretty-print the return values
type jsonResponse struct {
	value []byte
}

func newJSONResponse(val []byte) *jsonResponse {
	return &jsonResponse{
		value: val,
	}
}

func (j *jsonResponse) String() string {
	var parsed bytes.Buffer
	err := json.Indent(&parsed, j.value, "", "  ")
	if err != nil {
		return string(j.value)
	}
	return parsed.String()
}

func (j *jsonResponse) MarshalJSON() ([]byte, error) {
	if json.Valid(j.value) {
		return j.value, nil
	}

	return json.Marshal(j.value)
}

func (j *jsonResponse) GobEncode() ([]byte, error) {
	w := new(bytes.Buffer)
	err := gob.NewEncoder(w).Encode(j.value)
	if err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func (j *jsonResponse) GobDecode(buf []byte) error {
	return gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&j.value)
}
