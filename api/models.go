package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vainnor/training-records/models"
)

// flexInt decodes an integer sent either as a JSON number or as a numeric
// string, which is what HTML form values arrive as. null and "" leave it
// unset.
type flexInt struct {
	value int64
	set   bool
}

func (n *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = flexInt{}
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" || raw == "null" {
			*n = flexInt{}
			return nil
		}
	}

	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*n = flexInt{value: v, set: true}
		return nil
	}
	// 45.0 is still an integer.
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f == math.Trunc(f) && math.Abs(f) < math.MaxInt64 {
		*n = flexInt{value: int64(f), set: true}
		return nil
	}
	return fmt.Errorf("invalid integer %s", data)
}

func (n flexInt) ptr() *int64 {
	if !n.set {
		return nil
	}
	v := n.value
	return &v
}

// sessionRequest is the body of create and update requests. Every field but
// certification_id is required.
type sessionRequest struct {
	Date            *string `json:"date"`
	Duration        flexInt `json:"duration"`
	Location        *string `json:"location"`
	TrainerID       flexInt `json:"trainer_id"`
	CertificationID flexInt `json:"certification_id"`
}

func decodeSessionRequest(body []byte) (models.SessionInput, error) {
	var req sessionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return models.SessionInput{}, fmt.Errorf("invalid request body: %w", err)
	}
	return req.input()
}

func (req sessionRequest) input() (models.SessionInput, error) {
	if req.Date == nil {
		return models.SessionInput{}, errors.New("date is required")
	}
	date, err := models.ParseDate(*req.Date)
	if err != nil {
		return models.SessionInput{}, err
	}

	if !req.Duration.set {
		return models.SessionInput{}, errors.New("duration is required")
	}
	if req.Duration.value < 0 {
		return models.SessionInput{}, errors.New("duration must not be negative")
	}
	if req.Location == nil {
		return models.SessionInput{}, errors.New("location is required")
	}
	if !req.TrainerID.set {
		return models.SessionInput{}, errors.New("trainer_id is required")
	}

	in := models.SessionInput{
		Date:      date,
		Duration:  req.Duration.ptr(),
		Location:  req.Location,
		TrainerID: req.TrainerID.value,
	}
	// 0 is what an unselected dropdown submits.
	if req.CertificationID.set && req.CertificationID.value != 0 {
		in.CertificationID = req.CertificationID.ptr()
	}
	return in, nil
}
