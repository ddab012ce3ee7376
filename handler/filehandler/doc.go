// Package filehandler provides handlers that write formatted log entries
// to files.
//
//   - FileHandler writes to one file and never rotates.
//   - RotatingFileHandler rolls the file over once it has reached MaxBytes.
//   - TimedRotatingFileHandler rolls the file over after a fixed interval
//     or at the times of a cron schedule ("@midnight", "0 */6 * * *").
//   - ArchiveHandler rolls over by size into timestamped, optionally
//     compressed archives that can be aged out.
//
// Rotating handlers keep numbered backups: the active file keeps its name
// and backups are <name>.1 (newest) through <name>.N. On rotation the
// oldest backup is deleted and the others move up one index. With no
// backups the active file is simply truncated.
//
// Every handler owns a mutex held across the rotation check and the write
// that follows, so concurrent writers never write into a file that is
// being renamed. Rotation failures are returned from Handle and are not
// retried.
package filehandler
