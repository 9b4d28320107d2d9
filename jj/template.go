package jj

// Templates for stable, tab-delimited jj output. Fields that can contain tabs
// (description) always come last so parsers can re-join overflow.

// fieldSeparator between template fields.
const fieldSeparator = "\t"

// logFieldCount is the number of fields logTemplate emits per node line.
// Parsers split with this limit so tabs inside the description survive.
const logFieldCount = 9

// logTemplate renders one line per commit:
// change_id, commit_id (full), author name, author email, timestamp,
// bookmarks, state flags (E=empty C=conflict W=working-copy I=immutable),
// parent change ids, description first line.
const logTemplate = `change_id.short(12) ++ "\t" ++ ` +
	`commit_id.short(40) ++ "\t" ++ ` +
	`author.name() ++ "\t" ++ ` +
	`author.email() ++ "\t" ++ ` +
	`author.timestamp().format('%Y-%m-%dT%H:%M:%S%z') ++ "\t" ++ ` +
	`bookmarks.join(",") ++ "\t" ++ ` +
	`if(empty, "E", "") ++ if(conflict, "C", "") ++ if(current_working_copy, "W", "") ++ if(immutable, "I", "") ++ "\t" ++ ` +
	`parents.map(|p| p.change_id().short(12)).join(",") ++ "\t" ++ ` +
	`description.first_line() ++ "\n"`

// bookmarkFieldCount for bookmarkTemplate lines.
const bookmarkFieldCount = 5

// bookmarkTemplate renders one line per ref from `jj bookmark list
// --all-remotes`: name, remote (empty for the local ref), tracked, conflict,
// target change id.
const bookmarkTemplate = `name ++ "\t" ++ ` +
	`if(remote, remote, "") ++ "\t" ++ ` +
	`if(tracked, "true", "false") ++ "\t" ++ ` +
	`if(conflict, "true", "false") ++ "\t" ++ ` +
	`if(normal_target, normal_target.change_id().short(12), "") ++ "\n"`

// opLogFieldCount for opLogTemplate lines.
const opLogFieldCount = 5

// opLogTemplate renders one line per operation: id, user, timestamp, tags,
// description first line.
const opLogTemplate = `self.id().short(12) ++ "\t" ++ ` +
	`self.user() ++ "\t" ++ ` +
	`self.time().start().format('%Y-%m-%d %H:%M:%S') ++ "\t" ++ ` +
	`self.tags() ++ "\t" ++ ` +
	`self.description().first_line() ++ "\n"`

// evologFieldCount for evologTemplate lines.
const evologFieldCount = 3

// evologTemplate renders one line per predecessor commit of a change:
// commit id, timestamp, description first line.
const evologTemplate = `commit_id.short(40) ++ "\t" ++ ` +
	`author.timestamp().format('%Y-%m-%dT%H:%M:%S%z') ++ "\t" ++ ` +
	`description.first_line() ++ "\n"`
