package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionSource  = "src"
	actionTopic   = "topic"
	actionFile    = "file"
	actionCount   = "count"
	actionStart   = "start"
	actionAnswer  = "ans"
	actionNext    = "next"
	actionRestart = "restart"
)

// Source sub-actions.
const (
	sourceTopic = "topic"
	sourceFile  = "file"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// intParam parses the i-th parameter as an int.
func (cd callbackData) intParam(i int) (int, bool) {
	if i >= len(cd.Params) {
		return 0, false
	}
	n, err := strconv.Atoi(cd.Params[i])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

func buildSourceCallback(source string) string {
	return callbackData{Action: actionSource, Params: []string{source}}.encode()
}

// buildTopicCallback refers to a built-in topic by index to stay within Telegram's 64 bytes.
func buildTopicCallback(index int) string {
	return callbackData{Action: actionTopic, Params: []string{strconv.Itoa(index)}}.encode()
}

// buildFileCallback refers to an uploaded file by its index in the cached list.
func buildFileCallback(index int) string {
	return callbackData{Action: actionFile, Params: []string{strconv.Itoa(index)}}.encode()
}

func buildCountCallback(n int) string {
	return callbackData{Action: actionCount, Params: []string{strconv.Itoa(n)}}.encode()
}

func buildStartCallback() string {
	return actionStart
}

// buildAnswerCallback builds callback data for choosing an option of a question.
func buildAnswerCallback(questionIndex, optionIndex int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{
			strconv.Itoa(questionIndex),
			strconv.Itoa(optionIndex),
		},
	}.encode()
}

func buildNextCallback() string {
	return actionNext
}

func buildRestartCallback() string {
	return actionRestart
}
