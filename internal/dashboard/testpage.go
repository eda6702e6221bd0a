package dashboard

import (
	"errors"
	"html/template"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/huenthong/smartrouting/internal/charts"
	"github.com/huenthong/smartrouting/internal/format"
	"github.com/huenthong/smartrouting/internal/routing"
	"github.com/huenthong/smartrouting/internal/scenario"
)

// ALPS gauge geometry: engine scores run 0-100 and 90+ means the lead
// was auto-escalated.
const (
	alpsGaugeMax  = 100
	alpsThreshold = 90
)

// routeInput is the validated routing submission.
type routeInput struct {
	Message string `validate:"required,max=4000"`
	Channel string `validate:"required,oneof=whatsapp web facebook telegram"`
}

// formView is the test form state echoed back into the page.
type formView struct {
	Scenario string
	Message  string
	Channel  string
	IsRepeat bool
	Length   int
}

type testData struct {
	page
	Scenarios []scenario.Scenario
	Channels  []string
	Form      formView
	FormError string
	Result    *format.Result
	Gauge     template.HTML
	APIError  *errorView
}

// handleTestForm renders the routing test form preloaded with the first
// scenario.
func (s *Server) handleTestForm(w http.ResponseWriter, r *http.Request) {
	form := formView{Channel: string(routing.ChannelWhatsApp)}
	if len(s.scenarios) > 0 {
		form.Scenario = s.scenarios[0].Name
		form.Message = s.scenarios[0].Message
	}

	s.renderTest(w, r, form, nil)
}

// handleTestSubmit handles both form actions: loading a scenario's
// message into the form, and routing the message through the engine.
func (s *Server) handleTestSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := formView{
		Scenario: r.PostFormValue("scenario"),
		Message:  r.PostFormValue("message"),
		Channel:  r.PostFormValue("channel"),
		IsRepeat: r.PostFormValue("is_repeat") == "true",
	}

	if r.PostFormValue("action") == "load" {
		if sc, ok := scenario.Find(s.scenarios, form.Scenario); ok {
			form.Message = sc.Message
		}
		s.renderTest(w, r, form, nil)
		return
	}

	input := routeInput{Message: form.Message, Channel: form.Channel}
	if err := s.validate.Struct(input); err != nil {
		s.renderTest(w, r, form, &testResult{FormError: formErrorMessage(err)})
		return
	}

	req := routing.RoutingRequest{
		ChatID:           "test_" + time.Now().Format("150405"),
		Message:          input.Message,
		Channel:          routing.Channel(input.Channel),
		IsRepeatCustomer: form.IsRepeat,
	}

	result, err := s.client().SubmitMessage(r.Context(), req)
	if err != nil {
		s.logger.Warn().Err(err).Str("chat_id", req.ChatID).Msg("routing submission failed")
		s.renderTest(w, r, form, &testResult{APIError: errorViewFrom(err)})
		return
	}

	s.logger.Info().
		Str("chat_id", req.ChatID).
		Str("intent", result.Intent).
		Bool("escalated", result.Escalated).
		Msg("routing submission succeeded")

	view := format.FormatResult(result)
	s.renderTest(w, r, form, &testResult{Result: &view})
}

// testResult bundles the outcome section of the page, whichever shape
// it takes.
type testResult struct {
	FormError string
	Result    *format.Result
	APIError  *errorView
}

func (s *Server) renderTest(w http.ResponseWriter, r *http.Request, form formView, outcome *testResult) {
	c := s.client()
	// Rune count, to agree with the validator's max=4000.
	form.Length = utf8.RuneCountInString(form.Message)

	channels := make([]string, 0, len(routing.AllChannels))
	for _, ch := range routing.AllChannels {
		channels = append(channels, string(ch))
	}

	data := testData{
		page:      s.newPage(r.Context(), c, "test", "🧪 Interactive Routing Test"),
		Scenarios: s.scenarios,
		Channels:  channels,
		Form:      form,
	}

	if outcome != nil {
		data.FormError = outcome.FormError
		data.Result = outcome.Result
		data.APIError = outcome.APIError

		if outcome.Result != nil && outcome.Result.ALPS != nil {
			data.Gauge = s.renderer.Gauge(charts.GaugeSpec{
				Title:     "ALPS Score",
				Name:      "ALPS",
				Value:     outcome.Result.ALPS.Score,
				Max:       alpsGaugeMax,
				Threshold: alpsThreshold,
			})
		}
	}

	s.render(w, "test.html", data)
}

func formErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Field() {
		case "Message":
			if verrs[0].Tag() == "max" {
				return "Message is too long (4000 characters max)."
			}
			return "Message is required."
		case "Channel":
			return "Choose one of the supported channels."
		}
	}
	return "Invalid form submission."
}
