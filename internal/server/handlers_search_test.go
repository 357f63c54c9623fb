package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minjae/job-coach/internal/types"
)

const searchFixture = `
<html><body>
<div class="common_recruilt_list">
  <div class="list_body">
    <div class="box_item">
      <div class="company_nm"><a>에이스로보틱스</a></div>
      <div class="notification_info"><a class="str_tit" href="/zf_user/jobs/relay/view?rec_idx=101">로봇 SW 엔지니어</a></div>
      <div class="recruit_info"><p>서울 강남구</p><p>경력 3년</p><p>학력무관</p></div>
    </div>
    <div class="box_item">
      <div class="company_nm"><span>다른회사</span></div>
      <div class="notification_info"><a class="str_tit" href="/zf_user/jobs/relay/view?rec_idx=102">백엔드 개발자</a></div>
      <div class="recruit_info"><p>부산</p><p>신입</p><p>대졸</p></div>
    </div>
  </div>
</div>
</body></html>`

func newBoard(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	board := httptest.NewServer(handler)
	t.Cleanup(board.Close)
	return board
}

func TestSearch_MissingCompanyIs400(t *testing.T) {
	_, ts := newTestServer(t, newFakeLLM())

	resp, err := http.Get(ts.URL + "/search")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSearch_ReturnsMatchingPostings(t *testing.T) {
	board := newBoard(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(searchFixture))
	})

	s, ts := newTestServer(t, newFakeLLM())
	s.crawler.BaseURL = board.URL

	resp, err := http.Get(ts.URL + "/search?company=" + "%EC%97%90%EC%9D%B4%EC%8A%A4")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var postings []types.JobPosting
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&postings))
	require.Len(t, postings, 1, "non-matching companies are filtered out")
	assert.Equal(t, "에이스로보틱스", postings[0].Name)
	assert.Equal(t, "로봇 SW 엔지니어", postings[0].Job)
	assert.Equal(t, board.URL+"/zf_user/jobs/relay/view?rec_idx=101", postings[0].URL)
	assert.Equal(t, "서울 강남구", postings[0].Place)
	assert.Equal(t, "경력 3년", postings[0].Career)
	assert.Equal(t, "학력무관", postings[0].Education)
}

func TestSearch_NoMatchesReturnsMessage(t *testing.T) {
	board := newBoard(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(searchFixture))
	})

	s, ts := newTestServer(t, newFakeLLM())
	s.crawler.BaseURL = board.URL

	resp, err := http.Get(ts.URL + "/search?company=nomatch")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "No recruitment information found.", out["message"])
}

func TestSearch_BoardWithoutListIs502(t *testing.T) {
	board := newBoard(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html><body>maintenance</body></html>"))
	})

	s, ts := newTestServer(t, newFakeLLM())
	s.crawler.BaseURL = board.URL

	resp, err := http.Get(ts.URL + "/search?company=Acme")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}
