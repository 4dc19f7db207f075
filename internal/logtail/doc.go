// Package logtail reads the tail of the labelprint log for the terminal UI.
//
// Read keeps a ring buffer of maxLines entries so only one pass over the
// file is needed regardless of its size. Level and Filter understand the
// logrus text format (level=warning ...) so the log view can hide chatter
// below a chosen severity:
//
//	lines, err := logtail.Read(cfg.LogFile, 400)
//	if err != nil {
//		return err
//	}
//	lines = logtail.Filter(lines, logrus.WarnLevel)
package logtail
