// Package notify renders cleanup run results into a plain-text report and
// delivers it by email through an unauthenticated SMTP relay.
package notify
