// Package notifications delivers run events via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and degrades to a no-op when notifications are disabled. The
// analysis runner is the only caller; it depends on the Service interface.
package notifications
