// Package file persists the ingestion artifacts on disk: the
// processed-repository index, the raw digests and their parsed JSON
// per-file indexes. All of it lives under one data directory whose
// layout is a compatibility contract:
//
//	data/processed_repos.json     JSON object, repo key -> null
//	data/<owner>-<repo>[...].txt  raw digest text
//	data/<owner>-<repo>[...].json parsed per-file index
//
// Writes are atomic (temp file + rename) so a crash cannot leave a
// truncated index behind. There is deliberately no in-memory cache:
// every lookup re-reads from disk.
package file
