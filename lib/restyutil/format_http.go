package restyutil

import (
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/go-resty/resty/v2"
)

const noBody = "<NO BODY AVAILABLE>"

// writeHeaders writes headers sorted by key so two dumps of the same
// exchange diff cleanly.
func writeHeaders(out *strings.Builder, headers http.Header) {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		for _, v := range headers[k] {
			fmt.Fprintf(out, "%s: %s\n", k, v)
		}
	}
}

// requestBody replays the outgoing body. GetBody is set for bodyless
// requests too, it just hands back a nil reader.
func requestBody(req *http.Request) string {
	if req == nil || req.GetBody == nil {
		return noBody
	}
	body, err := req.GetBody()
	if err != nil {
		return fmt.Sprintf("<failed to get request body: %s>", err)
	}
	if body == nil || body == http.NoBody {
		return noBody
	}
	defer body.Close()

	contents, err := io.ReadAll(body)
	if err != nil {
		return fmt.Sprintf("<failed to read request body: %s>", err)
	}
	if len(contents) == 0 {
		return noBody
	}
	return string(contents)
}

// formatExchange renders a request/response pair as a plain text dump:
// a request section (line, headers, body) then a response section.
func formatExchange(res *resty.Response) string {
	var out strings.Builder

	out.WriteString("---- REQUEST ----\n\n")
	fmt.Fprintf(&out, "%s %s\n\n", res.Request.Method, res.Request.URL)
	if raw := res.Request.RawRequest; raw != nil {
		writeHeaders(&out, raw.Header)
		out.WriteString("\n")
	}
	out.WriteString(requestBody(res.Request.RawRequest))
	out.WriteString("\n\n")

	location := res.Request.URL
	if res.RawResponse != nil {
		if redirected, err := res.RawResponse.Location(); err == nil {
			location = redirected.String()
		}
	}

	out.WriteString("---- RESPONSE ----\n\n")
	fmt.Fprintf(&out, "%d %s (%s)\n\n", res.StatusCode(), location, res.Time())
	writeHeaders(&out, res.Header())
	out.WriteString("\n")
	if body := res.String(); body != "" {
		out.WriteString(body)
	} else {
		out.WriteString(noBody)
	}
	return out.String()
}
