/*
	Project: Masomo Surveys - student & parent survey dashboards for https://masomo.cd
*/
package masomo

/*
TODO: answers submission: POST /v1/dashboard/surveys/:token/answers (questions are read-only for now)
TODO: swagger for /v1/dashboard
TODO: admin: `seed` from the questions API (questionsvc) into the database, for offline demos
*/
