package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Home() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Drawing Bot</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">Drawing Bot</span>
        <h1>Raffles, rumbles, and lucky numbers.</h1>
        <p>Look up a community to see its drawings and live entry counts.</p>
      </header>

      <section class="panel">
        <div>
          <h2>Find a community</h2>
          <p>Enter a community ID to open its drawing board.</p>
        </div>
        <form id="communityForm" class="join-form">
          <input name="community" placeholder="Community ID" autocomplete="off" required/>
          <button type="submit" class="primary">Open board</button>
        </form>
      </section>
    </main>

    <script>
      const form = document.getElementById("communityForm");
      form.addEventListener("submit", (event) => {
        event.preventDefault();
        const community = form.elements.community.value.trim();
        if (community) {
          window.location.href = "/communities/" + encodeURIComponent(community);
        }
      });
    </script>
  </body>
</html>`)
		return nil
	})
}
