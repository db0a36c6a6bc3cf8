package main

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_application_applicantLoginAndList(t *testing.T) {
	server := startTestServer(t)
	ctx := context.Background()
	client := server.Client()

	// Without a token the applicant area redirects to the login page.
	doc, err := client.GetDoc(ctx, "/applicant/complaints")
	require.NoError(t, err)
	require.Contains(t, doc.Find("h1").Text(), "민원인 로그인")

	// The OAuth callback stores the token and lands on the dashboard.
	doc, err = client.GetDoc(ctx, "/applicant/auth/callback?token="+stubBearerToken)
	require.NoError(t, err)
	require.Contains(t, doc.Find("h1").Text(), "나의 민원")
	require.Equal(t, 1, doc.Find("#recent-panel").Length())

	// The recent panel fragment lists at most three complaints.
	doc, err = client.GetDoc(ctx, "/applicant/main/recent")
	require.NoError(t, err)
	require.Equal(t, 3, doc.Find("li").Length())

	// The full list renders every complaint.
	doc, err = client.GetDoc(ctx, "/applicant/complaints")
	require.NoError(t, err)
	require.Equal(t, 3, doc.Find("tbody tr").Length())
	require.Contains(t, doc.Text(), "전체 3건 중 3건")
}

func Test_application_complaintListSearchAndSort(t *testing.T) {
	server := startTestServer(t)
	ctx := context.Background()
	client := server.Client()

	_, err := client.GetDoc(ctx, "/applicant/auth/callback?token="+stubBearerToken)
	require.NoError(t, err)

	// A committed keyword narrows the list.
	doc, err := client.SubmitForm(ctx, "/applicant/complaints", "/applicant/complaints/search", url.Values{
		"keyword": {"소음"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("tbody tr").Length())
	require.Contains(t, doc.Find("tbody").Text(), "소음이 심합니다")

	// The committed filter survives navigation.
	doc, err = client.GetDoc(ctx, "/applicant/complaints")
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("tbody tr").Length())

	// An empty search commits the empty keyword and restores the full list.
	doc, err = client.SubmitForm(ctx, "/applicant/complaints", "/applicant/complaints/search", url.Values{
		"keyword": {""},
	})
	require.NoError(t, err)
	require.Equal(t, 3, doc.Find("tbody tr").Length())

	// Oldest-first sorting reorders the rows immediately.
	doc, err = client.GetDoc(ctx, "/applicant/complaints?sort=date-asc")
	require.NoError(t, err)
	firstTitle := doc.Find("tbody tr").First().Find("td").Eq(1).Text()
	require.Contains(t, firstTitle, "가로등이 고장났어요")

	// Date range filters are inclusive on both ends.
	doc, err = client.SubmitForm(ctx, "/applicant/complaints", "/applicant/complaints/search", url.Values{
		"startDate": {"2026-08-05"},
		"endDate":   {"2026-08-10"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, doc.Find("tbody tr").Length())
}

func Test_application_complaintDetailAndComment(t *testing.T) {
	server := startTestServer(t)
	ctx := context.Background()
	client := server.Client()

	_, err := client.GetDoc(ctx, "/applicant/auth/callback?token="+stubBearerToken)
	require.NoError(t, err)

	// An answered complaint shows both sides of the conversation.
	doc, err := client.GetDoc(ctx, "/applicant/complaints/2")
	require.NoError(t, err)
	require.Equal(t, 2, doc.Find("ol.thread li").Length())
	require.Contains(t, doc.Text(), "민원인(본인)")
	require.Contains(t, doc.Text(), "현장 점검 후 조치하였습니다")

	// An unanswered complaint shows only the submission and the pending notice.
	doc, err = client.GetDoc(ctx, "/applicant/complaints/1")
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("ol.thread li").Length())
	require.Contains(t, doc.Text(), "답변 대기 중")

	// Submitting a comment returns to the detail page.
	doc, err = client.SubmitForm(ctx, "/applicant/complaints/2", "/applicant/complaints/2/comments", url.Values{
		"content": {"추가로 확인 부탁드립니다"},
	})
	require.NoError(t, err)
	require.Contains(t, doc.Find("h1").Text(), "소음이 심합니다")
	require.Equal(t, 0, doc.Find("p[role=alert]").Length())

	// An empty comment re-renders with a notice instead of submitting.
	doc, err = client.SubmitForm(ctx, "/applicant/complaints/2", "/applicant/complaints/2/comments", url.Values{
		"content": {""},
	})
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("p[role=alert]").Length())
	require.True(t, strings.Contains(doc.Text(), "내용을 입력"))
}

func Test_application_dualRoleListIsolation(t *testing.T) {
	server := startTestServer(t)
	ctx := context.Background()
	client := server.Client()

	// One browser signed into both areas at once.
	_, err := client.SubmitForm(ctx, "/agent/login", "/agent/login", url.Values{
		"username": {stubAgentUsername},
		"password": {stubAgentPassword},
	})
	require.NoError(t, err)
	_, err = client.GetDoc(ctx, "/applicant/auth/callback?token="+stubBearerToken)
	require.NoError(t, err)

	// A search committed in the applicant view narrows only that view.
	doc, err := client.SubmitForm(ctx, "/applicant/complaints", "/applicant/complaints/search", url.Values{
		"keyword": {"소음"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("tbody tr").Length())

	// The agent view still shows every complaint.
	doc, err = client.GetDoc(ctx, "/agent/complaints")
	require.NoError(t, err)
	require.Equal(t, 3, doc.Find("tbody tr").Length())

	// And the applicant filter is still in place afterwards.
	doc, err = client.GetDoc(ctx, "/applicant/complaints")
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("tbody tr").Length())
}

func Test_application_applicantLogout(t *testing.T) {
	server := startTestServer(t)
	ctx := context.Background()
	client := server.Client()

	_, err := client.GetDoc(ctx, "/applicant/auth/callback?token="+stubBearerToken)
	require.NoError(t, err)

	doc, err := client.SubmitForm(ctx, "/applicant/main", "/applicant/logout", nil)
	require.NoError(t, err)
	require.Contains(t, doc.Find("h1").Text(), "민원인 로그인")

	// The cleared session no longer reaches the applicant area.
	doc, err = client.GetDoc(ctx, "/applicant/complaints")
	require.NoError(t, err)
	require.Contains(t, doc.Find("h1").Text(), "민원인 로그인")
}
