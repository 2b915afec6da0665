// Package transcription classifies transcription records for display:
// the media type is parsed from the transcription header and the origin
// community from the transcription URL.
package transcription

import "regexp"

var (
	headerPattern = regexp.MustCompile(`^\s*\*(?P<type>\w+) Transcription:?\s*(?P<format>[\w ]*)\*`)
	sourcePattern = regexp.MustCompile(`reddit\.com/(?P<source>r/\w+)`)
)

// Type determines the media type of a transcription from its header line,
// e.g. "*Image Transcription: Tumblr*" yields "Tumblr" and
// "*Video Transcription*" yields "Video". Texts without a recognizable
// header are reported as "Post".
func Type(text string) string {
	match := headerPattern.FindStringSubmatch(text)
	if match == nil {
		return "Post"
	}
	if format := match[headerPattern.SubexpIndex("format")]; format != "" {
		return format
	}
	return match[headerPattern.SubexpIndex("type")]
}

// Source determines the community a transcription was posted to from its
// URL, e.g. "r/CasualUK". Unrecognizable URLs are reported as "the source".
func Source(url string) string {
	match := sourcePattern.FindStringSubmatch(url)
	if match == nil {
		return "the source"
	}
	return match[sourcePattern.SubexpIndex("source")]
}
