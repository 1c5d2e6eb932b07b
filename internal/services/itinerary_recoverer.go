package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
	"travelgenie/internal/models/response_models"
	"travelgenie/pkg/utils"

	"github.com/xeipuuv/gojsonschema"
)

type RecoveryStrategy string

const (
	StrategyBracketScan RecoveryStrategy = "bracket_scan"
	StrategyLineStitch  RecoveryStrategy = "line_stitch"
	StrategyWholeText   RecoveryStrategy = "whole_text"
)

var (
	errNoArray        = errors.New("no JSON array found")
	errNoObjects      = errors.New("no day objects found")
	errEmptyItinerary = errors.New("JSON array holds no day objects")
	errNotDayValue    = errors.New("JSON value is neither an array nor an object")
)

// A day must be an object with exactly these five keys.
const dayPlanSchemaJSON = `{
  "type": "object",
  "properties": {
    "day":       {"type": "integer", "minimum": 1},
    "summary":   {"type": "string"},
    "morning":   {"type": "string"},
    "afternoon": {"type": "string"},
    "evening":   {"type": "string"}
  },
  "required": ["day", "summary", "morning", "afternoon", "evening"],
  "additionalProperties": false
}`

var dayPlanSchema = func() *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(dayPlanSchemaJSON))
	if err != nil {
		panic(fmt.Sprintf("day plan schema: %v", err))
	}
	return schema
}()

// Recovery describes how an itinerary was pulled out of a reply.
type Recovery struct {
	Strategy RecoveryStrategy
	Days     response_models.Itinerary
	// Dropped lists objects the line stitcher parsed but rejected.
	Dropped []error
}

// RecoverItinerary extracts day records from a free-form model reply.
func RecoverItinerary(rawText string) (response_models.Itinerary, error) {
	recovery, err := RecoverItineraryDetailed(rawText)
	if err != nil {
		return nil, err
	}
	return recovery.Days, nil
}

// RecoverItineraryDetailed runs bracket scan, line stitching and whole-text parsing in that
// order and returns the first that yields days.
func RecoverItineraryDetailed(rawText string) (*Recovery, error) {
	var causes []error

	days, err := recoverFromBracketScan(rawText)
	if err == nil {
		return &Recovery{Strategy: StrategyBracketScan, Days: days}, nil
	}
	causes = append(causes, fmt.Errorf("%s: %w", StrategyBracketScan, err))

	days, dropped := recoverFromLineStitch(rawText)
	if len(days) > 0 {
		return &Recovery{Strategy: StrategyLineStitch, Days: days, Dropped: dropped}, nil
	}
	if len(dropped) > 0 {
		causes = append(causes, fmt.Errorf("%s: %w", StrategyLineStitch, errors.Join(dropped...)))
	} else {
		causes = append(causes, fmt.Errorf("%s: %w", StrategyLineStitch, errNoObjects))
	}

	days, err = recoverFromWholeText(rawText)
	if err == nil {
		return &Recovery{Strategy: StrategyWholeText, Days: days, Dropped: dropped}, nil
	}
	causes = append(causes, fmt.Errorf("%s: %w", StrategyWholeText, err))

	return nil, &utils.UnparseableResponseError{RawText: rawText, Causes: causes}
}

// recoverFromBracketScan parses the text between the first '[' and the last ']'.
func recoverFromBracketScan(rawText string) (response_models.Itinerary, error) {
	start := strings.Index(rawText, "[")
	end := strings.LastIndex(rawText, "]")
	if start < 0 || end < 0 || start >= end {
		return nil, errNoArray
	}
	return decodeDayArray([]byte(rawText[start : end+1]))
}

// recoverFromLineStitch collects objects spread across lines when no wrapping array parses.
// A line starting with '{' opens a buffer; every line ending with '}' (a trailing comma is
// tolerated) is a candidate close. If the buffer does not parse there, the brace was interior
// and capturing continues.
func recoverFromLineStitch(rawText string) (response_models.Itinerary, []error) {
	var (
		days      response_models.Itinerary
		dropped   []error
		buf       strings.Builder
		capturing bool
	)

	for _, line := range strings.Split(rawText, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "{") {
			if capturing {
				dropped = append(dropped, &utils.MalformedDayError{Index: -1, Reason: "unterminated object"})
			}
			buf.Reset()
			capturing = true
		} else if !capturing {
			continue
		}

		closing := strings.TrimSuffix(trimmed, ",")
		if !strings.HasSuffix(closing, "}") {
			buf.WriteString(line)
			buf.WriteByte('\n')
			continue
		}

		candidate := buf.String() + closing
		var object json.RawMessage
		if err := json.Unmarshal([]byte(candidate), &object); err != nil {
			buf.WriteString(line)
			buf.WriteByte('\n')
			continue
		}

		buf.Reset()
		capturing = false

		day, err := decodeDayPlan(object, -1)
		if err != nil {
			dropped = append(dropped, err)
			continue
		}
		days = append(days, day)
	}

	if capturing {
		dropped = append(dropped, &utils.MalformedDayError{Index: -1, Reason: "unterminated object at end of input"})
	}
	return days, dropped
}

// recoverFromWholeText parses the entire reply as one JSON array or object.
func recoverFromWholeText(rawText string) (response_models.Itinerary, error) {
	trimmed := strings.TrimSpace(rawText)
	var value json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &value); err != nil {
		return nil, err
	}

	switch trimmed[0] {
	case '[':
		return decodeDayArray(value)
	case '{':
		day, err := decodeDayPlan(value, 0)
		if err != nil {
			return nil, err
		}
		return response_models.Itinerary{day}, nil
	default:
		return nil, errNotDayValue
	}
}

func decodeDayArray(data []byte) (response_models.Itinerary, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errEmptyItinerary
	}

	days := make(response_models.Itinerary, 0, len(items))
	for i, item := range items {
		day, err := decodeDayPlan(item, i)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, nil
}

// decodeDayPlan validates one object against the day schema before converting it.
func decodeDayPlan(object json.RawMessage, index int) (response_models.DayPlan, error) {
	result, err := dayPlanSchema.Validate(gojsonschema.NewBytesLoader(object))
	if err != nil {
		return response_models.DayPlan{}, &utils.MalformedDayError{Index: index, Reason: err.Error()}
	}
	if !result.Valid() {
		reasons := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			reasons = append(reasons, desc.String())
		}
		return response_models.DayPlan{}, &utils.MalformedDayError{Index: index, Reason: strings.Join(reasons, ", ")}
	}

	var wire struct {
		Day       json.Number `json:"day"`
		Summary   string      `json:"summary"`
		Morning   string      `json:"morning"`
		Afternoon string      `json:"afternoon"`
		Evening   string      `json:"evening"`
	}
	if err := json.Unmarshal(object, &wire); err != nil {
		return response_models.DayPlan{}, &utils.MalformedDayError{Index: index, Reason: err.Error()}
	}
	day, err := dayNumber(wire.Day)
	if err != nil {
		return response_models.DayPlan{}, &utils.MalformedDayError{Index: index, Reason: err.Error()}
	}

	return response_models.DayPlan{
		Day:       day,
		Summary:   wire.Summary,
		Morning:   wire.Morning,
		Afternoon: wire.Afternoon,
		Evening:   wire.Evening,
	}, nil
}

// dayNumber converts the day value exactly. 2.0 and 2e0 are accepted; values
// that do not fit an int are rejected instead of wrapping or rounding.
func dayNumber(n json.Number) (int, error) {
	r, ok := new(big.Rat).SetString(n.String())
	if !ok || !r.IsInt() {
		return 0, fmt.Errorf("day %q is not an integer", n)
	}
	num := r.Num()
	if num.Sign() < 1 || !num.IsInt64() || num.Int64() > math.MaxInt {
		return 0, fmt.Errorf("day %s is out of range", n)
	}
	return int(num.Int64()), nil
}
