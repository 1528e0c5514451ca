package podbean

import "fmt"

// TokenResponse is the body returned by the OAuth token endpoint for both
// authorization-code and refresh-token grants.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"` // Token validity in seconds
	Scope        string `json:"scope,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Episode is a single podcast episode as returned by the API.
type Episode struct {
	ID             string        `json:"id"`
	PodcastID      string        `json:"podcast_id"`
	Title          string        `json:"title"`
	Content        string        `json:"content"`
	MediaURL       string        `json:"media_url"`
	PlayerURL      string        `json:"player_url"`
	PermalinkURL   string        `json:"permalink_url"`
	PublishTime    int64         `json:"publish_time"`
	Duration       int64         `json:"duration,omitempty"`
	Status         EpisodeStatus `json:"status"`
	Type           EpisodeType   `json:"type"`
	TranscriptsURL string        `json:"transcripts_url,omitempty"`
}

// EpisodeList is the response for an episode listing.
type EpisodeList struct {
	Count    int       `json:"count"`
	Offset   int       `json:"offset"`
	Limit    int       `json:"limit"`
	HasMore  bool      `json:"has_more"`
	Episodes []Episode `json:"episodes"`
}

// Podcast is a show owned by the authenticated account.
type Podcast struct {
	PodcastID        string   `json:"podcast_id"`
	Title            string   `json:"title"`
	Description      string   `json:"desc"`
	Logo             string   `json:"logo"`
	URL              string   `json:"website"`
	Category         string   `json:"category_name"`
	AllowEpisodeType []string `json:"allow_episode_type,omitempty"`
}

// PodcastList is the response for a podcast listing.
type PodcastList struct {
	Count    int       `json:"count"`
	Offset   int       `json:"offset"`
	Limit    int       `json:"limit"`
	HasMore  bool      `json:"has_more"`
	Podcasts []Podcast `json:"podcasts"`
}

// MediaItem is an uploaded media file.
type MediaItem struct {
	MediaKey    string `json:"media_key"`
	Title       string `json:"title"`
	Content     string `json:"content,omitempty"`
	Status      string `json:"status,omitempty"` // e.g. "finished", "transcoding"
	MediaURL    string `json:"media_url"`
	LogoURL     string `json:"logo_url,omitempty"`
	PlayerURL   string `json:"player_url,omitempty"`
	PublishTime string `json:"publish_time,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	Duration    int64  `json:"duration,omitempty"`
}

// MediaList is the response for a media listing.
type MediaList struct {
	Count   int         `json:"count"`
	Offset  int         `json:"offset"`
	Limit   int         `json:"limit"`
	HasMore bool        `json:"has_more"`
	Media   []MediaItem `json:"medias"`
}

// EpisodeStatus is the publication status of an episode. The zero value
// means "not set" and is omitted from request parameters.
type EpisodeStatus int

const (
	EpisodeStatusPublish EpisodeStatus = iota + 1
	EpisodeStatusDraft
	EpisodeStatusFuture
)

var episodeStatusNames = map[EpisodeStatus]string{
	EpisodeStatusPublish: "publish",
	EpisodeStatusDraft:   "draft",
	EpisodeStatusFuture:  "future",
}

// String returns the wire value for the status.
func (s EpisodeStatus) String() string {
	if name, ok := episodeStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("EpisodeStatus(%d)", int(s))
}

func (s EpisodeStatus) valid() bool {
	_, ok := episodeStatusNames[s]
	return ok
}

// ParseEpisodeStatus maps a wire value back to its status. Unrecognized
// values are an error, never a guessed variant.
func ParseEpisodeStatus(s string) (EpisodeStatus, error) {
	for status, name := range episodeStatusNames {
		if name == s {
			return status, nil
		}
	}
	return 0, fmt.Errorf("unrecognized episode status %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s EpisodeStatus) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("invalid episode status %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *EpisodeStatus) UnmarshalText(text []byte) error {
	status, err := ParseEpisodeStatus(string(text))
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// EpisodeType is the visibility of an episode. The zero value means
// "not set" and is omitted from request parameters.
type EpisodeType int

const (
	EpisodeTypePublic EpisodeType = iota + 1
	EpisodeTypePremium
	EpisodeTypePrivate
)

var episodeTypeNames = map[EpisodeType]string{
	EpisodeTypePublic:  "public",
	EpisodeTypePremium: "premium",
	EpisodeTypePrivate: "private",
}

// String returns the wire value for the type.
func (t EpisodeType) String() string {
	if name, ok := episodeTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("EpisodeType(%d)", int(t))
}

func (t EpisodeType) valid() bool {
	_, ok := episodeTypeNames[t]
	return ok
}

// ParseEpisodeType maps a wire value back to its type.
func ParseEpisodeType(s string) (EpisodeType, error) {
	for typ, name := range episodeTypeNames {
		if name == s {
			return typ, nil
		}
	}
	return 0, fmt.Errorf("unrecognized episode type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t EpisodeType) MarshalText() ([]byte, error) {
	if !t.valid() {
		return nil, fmt.Errorf("invalid episode type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *EpisodeType) UnmarshalText(text []byte) error {
	typ, err := ParseEpisodeType(string(text))
	if err != nil {
		return err
	}
	*t = typ
	return nil
}

// MediaFormat is an audio format accepted for upload.
type MediaFormat int

const (
	MediaFormatMP3 MediaFormat = iota + 1
	MediaFormatM4A
	MediaFormatOGG
)

var mediaFormatTypes = map[MediaFormat]string{
	MediaFormatMP3: "audio/mp3",
	MediaFormatM4A: "audio/m4a",
	MediaFormatOGG: "audio/ogg",
}

// ContentType returns the MIME type sent for the format.
func (f MediaFormat) ContentType() string {
	if ct, ok := mediaFormatTypes[f]; ok {
		return ct
	}
	return ""
}

// String returns the MIME type; MediaFormat's wire value is its MIME type.
func (f MediaFormat) String() string {
	if ct, ok := mediaFormatTypes[f]; ok {
		return ct
	}
	return fmt.Sprintf("MediaFormat(%d)", int(f))
}

func (f MediaFormat) valid() bool {
	_, ok := mediaFormatTypes[f]
	return ok
}

// ParseMediaFormat maps a MIME type back to its format.
func ParseMediaFormat(s string) (MediaFormat, error) {
	for format, ct := range mediaFormatTypes {
		if ct == s {
			return format, nil
		}
	}
	return 0, fmt.Errorf("unrecognized media format %q", s)
}
