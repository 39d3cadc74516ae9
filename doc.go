/*
	Project: StudySync - academic planning for students: courses, assignments, grades, weekly schedule & notes.

	apps/api    : echo REST API (+ optional weekly digest cron job)
	apps/admin  : admin CLI (migrate, seed, digest)
	core        : domain packages (models, validation, derivations & services)
	storage     : repositories (in-memory, postgres, remote record store) & seed fixtures
	services    : email & logger adapters
*/
package studysync
