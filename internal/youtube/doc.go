// Package youtube fetches caption data from YouTube.
//
// Client scrapes the watch page's embedded player response for caption track
// metadata and downloads timedtext XML tracks. ResolveVideoID normalizes the
// accepted URL and raw-ID input forms to an 11-character video ID.
package youtube
