package telegram

import "testing"

func TestCallbackRoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		data       string
		wantAction string
		wantParams []string
	}{
		{"source", buildSourceCallback(sourceFile), actionSource, []string{sourceFile}},
		{"topic", buildTopicCallback(12), actionTopic, []string{"12"}},
		{"file", buildFileCallback(3), actionFile, []string{"3"}},
		{"count", buildCountCallback(25), actionCount, []string{"25"}},
		{"start", buildStartCallback(), actionStart, nil},
		{"answer", buildAnswerCallback(49, 3), actionAnswer, []string{"49", "3"}},
		{"next", buildNextCallback(), actionNext, nil},
		{"restart", buildRestartCallback(), actionRestart, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if len(tc.data) > 64 {
				t.Errorf("callback data %q exceeds 64 bytes", tc.data)
			}

			cd := decodeCallback(tc.data)
			if cd.Action != tc.wantAction {
				t.Errorf("expected action %q, got %q", tc.wantAction, cd.Action)
			}
			if len(cd.Params) != len(tc.wantParams) {
				t.Fatalf("expected params %v, got %v", tc.wantParams, cd.Params)
			}
			for i := range cd.Params {
				if cd.Params[i] != tc.wantParams[i] {
					t.Errorf("expected params %v, got %v", tc.wantParams, cd.Params)
				}
			}
			if cd.Raw != tc.data {
				t.Errorf("expected raw %q, got %q", tc.data, cd.Raw)
			}
		})
	}
}

func TestIntParam(t *testing.T) {
	cd := decodeCallback("ans:2:x:-1")

	if n, ok := cd.intParam(0); !ok || n != 2 {
		t.Errorf("expected 2, got %d (ok=%v)", n, ok)
	}
	if _, ok := cd.intParam(1); ok {
		t.Error("expected non-numeric param to be rejected")
	}
	if _, ok := cd.intParam(2); ok {
		t.Error("expected negative param to be rejected")
	}
	if _, ok := cd.intParam(5); ok {
		t.Error("expected missing param to be rejected")
	}
}
