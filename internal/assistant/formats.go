package assistant

import (
	"encoding/json"
	"net/http"
)

func init() {
	Register(Format{
		Kind:  KindFunctionCall,
		Order: 10,
		Matches: func(env *envelope) bool {
			return env.Message != nil && present(env.Message.FunctionCall)
		},
		Extract: extractFunctionCall,
		Write: func(w http.ResponseWriter, req Request, msg string) error {
			return writeJSON(w, functionResult{Result: msg})
		},
	})

	Register(Format{
		Kind:  KindToolCall,
		Order: 20,
		Matches: func(env *envelope) bool {
			return env.Message != nil && present(env.Message.ToolCalls)
		},
		Extract: extractToolCall,
		Write: func(w http.ResponseWriter, req Request, msg string) error {
			if req.ToolCallID == "" {
				return writeText(w, msg)
			}
			return writeJSON(w, toolResults{
				Results: []toolResult{{ToolCallID: req.ToolCallID, Result: msg}},
			})
		},
	})

	Register(Format{
		Kind:  KindDirect,
		Order: 30,
		Matches: func(env *envelope) bool {
			return true
		},
		Extract: func(env *envelope) Request {
			return Request{SearchValue: firstScalar(map[string]json.RawMessage{
				"phone": env.Phone,
				"email": env.Email,
			}, "phone", "email")}
		},
		Write: func(w http.ResponseWriter, req Request, msg string) error {
			return writeText(w, msg)
		},
	})
}

type functionResult struct {
	Result string `json:"result"`
}

type toolResult struct {
	ToolCallID string `json:"toolCallId"`
	Result     string `json:"result"`
}

type toolResults struct {
	Results []toolResult `json:"results"`
}

func extractFunctionCall(env *envelope) Request {
	var call struct {
		Parameters map[string]json.RawMessage `json:"parameters"`
	}
	if err := json.Unmarshal(env.Message.FunctionCall, &call); err != nil {
		return Request{}
	}
	return Request{SearchValue: firstScalar(call.Parameters, "phone", "email")}
}

func extractToolCall(env *envelope) Request {
	var calls []struct {
		ID       string `json:"id"`
		Function struct {
			Arguments json.RawMessage `json:"arguments"`
		} `json:"function"`
	}
	if err := json.Unmarshal(env.Message.ToolCalls, &calls); err != nil || len(calls) == 0 {
		return Request{}
	}

	first := calls[0]
	args := toolArguments(first.Function.Arguments)
	return Request{
		SearchValue: firstScalar(args, "phone", "email", "input"),
		ToolCallID:  first.ID,
	}
}

// toolArguments accepts arguments as an object or as a JSON-encoded string
// holding an object (the OpenAI tool call convention).
func toolArguments(raw json.RawMessage) map[string]json.RawMessage {
	if !present(raw) {
		return nil
	}

	var args map[string]json.RawMessage
	if err := json.Unmarshal(raw, &args); err == nil {
		return args
	}

	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return nil
	}
	if err := json.Unmarshal([]byte(encoded), &args); err != nil {
		return nil
	}
	return args
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, msg string) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err := w.Write([]byte(msg))
	return err
}
