package heatmap

import "encoding/json"

// BluePurple is the opaque blue-to-purple ramp used by the dashboard
func BluePurple() Colorscale {
	return Colorscale{
		{0.00, "rgba(230, 244, 255, 1.0)"},
		{0.10, "rgba(179, 218, 255, 1.0)"},
		{0.25, "rgba(128, 191, 255, 1.0)"},
		{0.50, "rgba(102, 140, 255, 1.0)"},
		{0.75, "rgba(128, 80, 200, 1.0)"},
		{1.00, "rgba(128, 0, 200, 1.0)"},
	}
}

// UnmarshalJSON decodes a Plotly [pos, color] pair
func (s *ColorStop) UnmarshalJSON(b []byte) error {
	var pair [2]json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if err := json.Unmarshal(pair[0], &s.Pos); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &s.Color)
}

func marshalPair(pos float64, color string) ([]byte, error) {
	return json.Marshal([2]any{pos, color})
}
