package openweather

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MissingFieldError reports a required JSON field that is absent or null.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// requireFields checks that data is a JSON object holding every key with a non-null value.
func requireFields(data []byte, keys ...string) error {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	for _, key := range keys {
		raw, ok := fields[key]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return &MissingFieldError{Field: key}
		}
	}

	return nil
}

type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c *Coord) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "lat", "lon"); err != nil {
		return err
	}
	type raw Coord
	return json.Unmarshal(data, (*raw)(c))
}

// Condition is one weather condition descriptor, e.g. {800 Clear "clear sky" 01d}.
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func (c *Condition) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "id", "main", "description", "icon"); err != nil {
		return err
	}
	type raw Condition
	return json.Unmarshal(data, (*raw)(c))
}

type Main struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  float64 `json:"pressure"`
	Humidity  float64 `json:"humidity"`
}

var mainFields = []string{"temp", "feels_like", "temp_min", "temp_max", "pressure", "humidity"}

func (m *Main) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, mainFields...); err != nil {
		return err
	}
	type raw Main
	return json.Unmarshal(data, (*raw)(m))
}

type Wind struct {
	Speed float64 `json:"speed"`
	Deg   float64 `json:"deg"`
}

func (w *Wind) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "speed", "deg"); err != nil {
		return err
	}
	type raw Wind
	return json.Unmarshal(data, (*raw)(w))
}

// CurrentWeather is the body of GET /weather.
type CurrentWeather struct {
	Coord   Coord       `json:"coord"`
	Weather []Condition `json:"weather"`
	Main    Main        `json:"main"`
	Name    string      `json:"name"`
	Wind    Wind        `json:"wind"`
}

func (c *CurrentWeather) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "coord", "weather", "main", "name", "wind"); err != nil {
		return err
	}
	type raw CurrentWeather
	return json.Unmarshal(data, (*raw)(c))
}

// ForecastMain carries the same metrics as Main plus the optional sea and ground level pressure.
type ForecastMain struct {
	Temp      float64  `json:"temp"`
	FeelsLike float64  `json:"feels_like"`
	TempMin   float64  `json:"temp_min"`
	TempMax   float64  `json:"temp_max"`
	Pressure  float64  `json:"pressure"`
	Humidity  float64  `json:"humidity"`
	SeaLevel  *float64 `json:"sea_level,omitempty"`
	GrndLevel *float64 `json:"grnd_level,omitempty"`
}

func (m *ForecastMain) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, mainFields...); err != nil {
		return err
	}
	type raw ForecastMain
	return json.Unmarshal(data, (*raw)(m))
}

type Clouds struct {
	All int `json:"all"`
}

func (c *Clouds) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "all"); err != nil {
		return err
	}
	type raw Clouds
	return json.Unmarshal(data, (*raw)(c))
}

type ForecastWind struct {
	Speed float64  `json:"speed"`
	Deg   float64  `json:"deg"`
	Gust  *float64 `json:"gust,omitempty"`
}

func (w *ForecastWind) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "speed", "deg"); err != nil {
		return err
	}
	type raw ForecastWind
	return json.Unmarshal(data, (*raw)(w))
}

// ForecastItem is one 3-hour step of the 5 day forecast.
type ForecastItem struct {
	Dt      int64        `json:"dt"`
	Main    ForecastMain `json:"main"`
	Weather []Condition  `json:"weather"`
	Clouds  Clouds       `json:"clouds"`
	Wind    ForecastWind `json:"wind"`
	DtTxt   string       `json:"dt_txt"`
}

// ID identifies the item within one forecast response.
func (f ForecastItem) ID() int64 {
	return f.Dt
}

func (f *ForecastItem) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "dt", "main", "weather", "clouds", "wind", "dt_txt"); err != nil {
		return err
	}
	type raw ForecastItem
	return json.Unmarshal(data, (*raw)(f))
}

type City struct {
	Name     string `json:"name"`
	Country  string `json:"country"`
	Coord    Coord  `json:"coord"`
	Timezone int    `json:"timezone"`
}

func (c *City) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "name", "country", "coord", "timezone"); err != nil {
		return err
	}
	type raw City
	return json.Unmarshal(data, (*raw)(c))
}

// ForecastResponse is the body of GET /forecast.
type ForecastResponse struct {
	List []ForecastItem `json:"list"`
	City City           `json:"city"`
}

func (f *ForecastResponse) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "list", "city"); err != nil {
		return err
	}
	type raw ForecastResponse
	return json.Unmarshal(data, (*raw)(f))
}
